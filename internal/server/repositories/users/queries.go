package users

type queries struct {
	create         string
	createIfAbsent string
	getByEmail     string
	list           string
}

var postgresQueries = queries{
	create: `INSERT INTO users (id, email, name, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
	createIfAbsent: `INSERT INTO users (id, email, name, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO NOTHING`,
	getByEmail: `SELECT id, email, name, password_hash, role, created_at FROM users
		WHERE email = $1`,
	list: `SELECT id, email, name, password_hash, role, created_at FROM users
		ORDER BY created_at, email`,
}

var sqliteQueries = queries{
	create: `INSERT INTO users (id, email, name, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
	createIfAbsent: `INSERT INTO users (id, email, name, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (email) DO NOTHING`,
	getByEmail: `SELECT id, email, name, password_hash, role, created_at FROM users
		WHERE email = ?`,
	list: `SELECT id, email, name, password_hash, role, created_at FROM users
		ORDER BY created_at, email`,
}
