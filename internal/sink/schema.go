package sink

// schema is applied on every open; CREATE IF NOT EXISTS keeps it idempotent.
// The unique indexes are the upsert conflict targets.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS tournaments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL,
		location TEXT,
		country TEXT,
		category TEXT,
		prize INTEGER,
		results_url TEXT,
		status TEXT,
		UNIQUE (name, date)
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tour TEXT NOT NULL,
		match_name TEXT NOT NULL,
		team1_players TEXT NOT NULL,
		team1_seed INTEGER NOT NULL DEFAULT 0,
		team1_country TEXT NOT NULL,
		team2_players TEXT NOT NULL,
		team2_seed INTEGER NOT NULL DEFAULT 0,
		team2_country TEXT NOT NULL,
		separator TEXT NOT NULL,
		scores TEXT,
		match_datetime TEXT NOT NULL,
		status TEXT NOT NULL,
		category TEXT NOT NULL,
		round TEXT NOT NULL,
		court INTEGER NOT NULL,
		stadium TEXT NOT NULL,
		duration TEXT,
		winner INTEGER NOT NULL DEFAULT 0,
		UNIQUE (tour, match_name, court, match_datetime)
	)`,
	`CREATE TABLE IF NOT EXISTS rankings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		rank INTEGER NOT NULL,
		ranking_change TEXT NOT NULL DEFAULT '-',
		player1_name TEXT NOT NULL,
		player2_name TEXT,
		country TEXT NOT NULL,
		points INTEGER NOT NULL,
		category TEXT NOT NULL,
		rank_category INTEGER NOT NULL,
		week TEXT NOT NULL,
		UNIQUE (rank, category, rank_category, week, player1_name)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_tour ON matches (tour)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_datetime ON matches (match_datetime)`,
	`CREATE INDEX IF NOT EXISTS idx_rankings_week ON rankings (week, category)`,
	`CREATE INDEX IF NOT EXISTS idx_tournaments_year ON tournaments (year, month)`,
}
