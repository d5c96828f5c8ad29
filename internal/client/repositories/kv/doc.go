// Package kv implements the client's durable key/value entries on top of
// the local SQLite database. A repository is bound to a dbx.DBTX, so the
// same code serves plain connections and transactions.
package kv
