// Package memory is an in-process implementation of store.Store.
//
// All state lives in one dataset guarded by a single mutex. Writes operate
// on a copy that replaces the dataset only when the write or transaction
// succeeds, so a failed transaction leaves no trace. Entities handed to and
// returned from the store are copies.
package memory
