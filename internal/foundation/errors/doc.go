// Package errors provides the classified error primitives used across entrynav.
//
// A ClassifiedError carries a category (config, discovery, hook, ...), a severity and
// structured context. Errors are built with the fluent builder:
//
//	err := errors.HookError("path resolver failed").
//		WithContext("file", absFile).
//		WithCause(cause).
//		Build()
//
// The CLI and HTTP adapters turn classified errors into exit codes, status codes and
// log records.
package errors
