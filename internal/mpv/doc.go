// Package mpv talks to a running mpv through its JSON IPC server
// (--input-ipc-server). Messages are newline delimited JSON objects: commands
// carry a request_id that mpv echoes in its reply, everything else is an event.
//
// Keys are bound with the keybind command so that pressing them sends a
// script-message back over the same connection, where Listen dispatches it to
// the callback registered with BindKey.
package mpv
