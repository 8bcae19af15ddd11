/*
Package session implements session management and persistence orchestration.

A session is a machine snapshot stored under an ID. The Manager restores the
machine, steps it and saves it back while holding a per-session lock, so
concurrent callers (HTTP handlers, MCP tools, replicas sharing a Redis store)
never interleave steps on the same tape.
*/
package session
