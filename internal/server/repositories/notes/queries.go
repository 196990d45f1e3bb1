package notes

type queries struct {
	create      string
	listByOwner string
	getOwned    string
	update      string
	delete      string
	ownerOf     string
	listAll     string
}

var postgresQueries = queries{
	create: `INSERT INTO notes (id, owner_id, seq, title, body, tags, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
	listByOwner: `SELECT id, owner_id, seq, title, body, tags, category, created_at FROM notes
		WHERE owner_id = $1 ORDER BY seq DESC`,
	getOwned: `SELECT id, owner_id, seq, title, body, tags, category, created_at FROM notes
		WHERE id = $1 AND owner_id = $2`,
	update: `UPDATE notes SET title = $1, body = $2, tags = $3, category = $4
		WHERE id = $5 AND owner_id = $6`,
	delete:  `DELETE FROM notes WHERE id = $1 AND owner_id = $2`,
	ownerOf: `SELECT owner_id FROM notes WHERE id = $1`,
	listAll: `SELECT n.id, n.owner_id, n.seq, n.title, n.body, n.tags, n.category, n.created_at, u.email
		FROM notes n JOIN users u ON u.id = n.owner_id
		ORDER BY u.email, n.seq DESC`,
}

var sqliteQueries = queries{
	create: `INSERT INTO notes (id, owner_id, seq, title, body, tags, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	listByOwner: `SELECT id, owner_id, seq, title, body, tags, category, created_at FROM notes
		WHERE owner_id = ? ORDER BY seq DESC`,
	getOwned: `SELECT id, owner_id, seq, title, body, tags, category, created_at FROM notes
		WHERE id = ? AND owner_id = ?`,
	update: `UPDATE notes SET title = ?, body = ?, tags = ?, category = ?
		WHERE id = ? AND owner_id = ?`,
	delete:  `DELETE FROM notes WHERE id = ? AND owner_id = ?`,
	ownerOf: `SELECT owner_id FROM notes WHERE id = ?`,
	listAll: `SELECT n.id, n.owner_id, n.seq, n.title, n.body, n.tags, n.category, n.created_at, u.email
		FROM notes n JOIN users u ON u.id = n.owner_id
		ORDER BY u.email, n.seq DESC`,
}
