// Package operation defines the contract shared by every tool and resource:
// descriptors with typed input schemas, a generic argument validator, and
// the result envelope that every invocation produces.
//
// Handlers only express the success path. Run validates the raw arguments,
// invokes the handler and maps any failure, including a panic, to an error
// envelope, so no error ever crosses the handler boundary.
package operation
