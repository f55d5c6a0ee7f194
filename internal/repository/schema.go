package repository

// Schema is the DDL for the workflow tables. The partial unique index on
// workflow_tasks is what prevents duplicate pending review tasks for the same
// product. History rows carry a BIGSERIAL seq so the audit trail reads back in
// insertion order even when entries share a timestamp. History and task rows
// keep no foreign key to products so they survive product deletion.
const Schema = `
CREATE TABLE IF NOT EXISTS products (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'active',
	workflow_status TEXT NOT NULL DEFAULT 'draft',
	health_score INT NOT NULL DEFAULT 7 CHECK (health_score BETWEEN 1 AND 10),
	auto_health_score INT NOT NULL DEFAULT 7 CHECK (auto_health_score BETWEEN 1 AND 10),
	manual_override BOOLEAN NOT NULL DEFAULT FALSE,
	ingredients TEXT[] NOT NULL DEFAULT '{}',
	admin_notes TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS workflow_tasks (
	id UUID PRIMARY KEY,
	task_type TEXT NOT NULL,
	product_id UUID NOT NULL,
	priority TEXT NOT NULL DEFAULT 'medium',
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS workflow_tasks_pending_unique
	ON workflow_tasks (product_id, task_type) WHERE status = 'pending';

CREATE TABLE IF NOT EXISTS workflow_history (
	id UUID PRIMARY KEY,
	seq BIGSERIAL,
	product_id UUID NOT NULL,
	status_from TEXT,
	status_to TEXT NOT NULL,
	notes TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS workflow_history_product_idx
	ON workflow_history (product_id, seq);
`
