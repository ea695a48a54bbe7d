package postgres

import "heyjob-backend/pkg/database"

var Migrations = []database.Migration{
	{
		Version:     1,
		Description: "Create jobs table",
		Up: `
			CREATE TABLE IF NOT EXISTS jobs (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				job_title TEXT NOT NULL,
				job_position TEXT NOT NULL,
				company_details TEXT NOT NULL,
				category TEXT NOT NULL DEFAULT 'Openings'
					CHECK (category IN ('WFH', 'Internship', 'Drive', 'Batches', 'Openings')),
				job_description TEXT NOT NULL DEFAULT '',
				package DOUBLE PRECISION,
				location TEXT NOT NULL DEFAULT '',
				image TEXT NOT NULL DEFAULT '',
				user_id TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'deleted')),
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);
			CREATE INDEX IF NOT EXISTS jobs_category_created_at_idx ON jobs (category, created_at);
			CREATE INDEX IF NOT EXISTS jobs_user_id_idx ON jobs (user_id);
		`,
		Down: `DROP TABLE IF EXISTS jobs`,
	},
	{
		Version:     2,
		Description: "Create users table",
		Up: `
			CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				phone TEXT NOT NULL DEFAULT '',
				email TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`,
		Down: `DROP TABLE IF EXISTS users`,
	},
}
