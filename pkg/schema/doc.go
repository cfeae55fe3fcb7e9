// Package schema is the request/response contract shared by the HTTP API and
// its clients. Field names and optionality are part of the wire format and
// must not drift: absent JSON fields decode to nil pointers or nil slices,
// which the services read as "leave unchanged".
package schema
