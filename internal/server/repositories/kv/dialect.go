package kv

// Dialect holds the statements the SQL host needs for one database engine.
type Dialect struct {
	Name string
	// Lock, when set, is executed first in every invocation transaction to
	// serialize invocations across processes.
	Lock    string
	Get     string
	Upsert  string
	GetMeta string
	SetMeta string
}

var Postgres = Dialect{
	Name: "postgres",
	// 1718185061 is "file" in ASCII; every ledger process takes the same key.
	Lock: `SELECT pg_advisory_xact_lock(1718185061)`,
	Get:  `SELECT value FROM kv WHERE namespace = $1 AND discriminant = $2`,
	Upsert: `INSERT INTO kv (namespace, discriminant, value) VALUES ($1, $2, $3)
		ON CONFLICT (namespace, discriminant) DO UPDATE SET value = EXCLUDED.value`,
	GetMeta: `SELECT value FROM kv_meta WHERE key = $1`,
	SetMeta: `INSERT INTO kv_meta (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
}

var SQLite = Dialect{
	Name: "sqlite",
	Get:  `SELECT value FROM kv WHERE namespace = ? AND discriminant = ?`,
	Upsert: `INSERT INTO kv (namespace, discriminant, value) VALUES (?, ?, ?)
		ON CONFLICT(namespace, discriminant) DO UPDATE SET value = excluded.value`,
	GetMeta: `SELECT value FROM kv_meta WHERE key = ?`,
	SetMeta: `INSERT INTO kv_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
}
