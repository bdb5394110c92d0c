package migration

// getAllMigrations retorna todas as migrações disponíveis
func getAllMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_milestones",
			Up: `
				-- Milestones formam uma árvore via coluna parent;
				-- o escopo de um milestone é ele próprio + descendentes
				CREATE TABLE milestones (
					name VARCHAR(255) PRIMARY KEY,
					start_date DATE,
					due_date DATE,
					parent VARCHAR(255) REFERENCES milestones(name) ON DELETE SET NULL,
					created_at TIMESTAMP DEFAULT NOW(),
					updated_at TIMESTAMP DEFAULT NOW()
				);

				CREATE INDEX idx_milestones_parent ON milestones(parent);
			`,
			Down: `
				DROP TABLE IF EXISTS milestones;
			`,
		},
		{
			Version: 2,
			Name:    "create_fact_tables",
			Up: `
				-- Snapshots diários por item, gravados por um recorder externo.
				-- Fatos históricos append-only: nunca alterados por esta API.
				CREATE TABLE item_snapshots (
					id BIGSERIAL PRIMARY KEY,
					milestone VARCHAR(255) NOT NULL,
					snapshot_date DATE NOT NULL,
					item_id VARCHAR(50) NOT NULL,
					item_type VARCHAR(50) NOT NULL,
					closed BOOLEAN NOT NULL DEFAULT FALSE,
					remaining_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
					effort DOUBLE PRECISION NOT NULL DEFAULT 0,
					recorded_at TIMESTAMP DEFAULT NOW(),
					UNIQUE (milestone, snapshot_date, item_id)
				);

				CREATE INDEX idx_item_snapshots_scope_date
					ON item_snapshots(milestone, snapshot_date);

				-- Transições de status, ordenadas no tempo
				CREATE TABLE status_changes (
					id BIGSERIAL PRIMARY KEY,
					milestone VARCHAR(255) NOT NULL,
					item_id VARCHAR(50) NOT NULL,
					changed_at TIMESTAMP NOT NULL,
					item_type VARCHAR(50) NOT NULL,
					old_status VARCHAR(100) NOT NULL,
					new_status VARCHAR(100) NOT NULL,
					effort DOUBLE PRECISION
				);

				CREATE INDEX idx_status_changes_scope_time
					ON status_changes(milestone, changed_at);

				-- Horas registradas por item/dia (unidade hours)
				CREATE TABLE work_logs (
					id BIGSERIAL PRIMARY KEY,
					milestone VARCHAR(255) NOT NULL,
					item_id VARCHAR(50) NOT NULL,
					log_date DATE NOT NULL,
					seconds_worked BIGINT NOT NULL DEFAULT 0
				);

				CREATE INDEX idx_work_logs_scope_date
					ON work_logs(milestone, log_date);
			`,
			Down: `
				DROP TABLE IF EXISTS work_logs;
				DROP TABLE IF EXISTS status_changes;
				DROP TABLE IF EXISTS item_snapshots;
			`,
		},
		{
			Version: 3,
			Name:    "create_status_registry_and_settings",
			Up: `
				-- Registro de quais status contam como "fechado" por tipo de item
				CREATE TABLE closed_statuses (
					item_type VARCHAR(50) NOT NULL,
					status VARCHAR(100) NOT NULL,
					PRIMARY KEY (item_type, status)
				);

				-- Padrões persistidos do painel administrativo
				CREATE TABLE burndown_settings (
					key VARCHAR(50) PRIMARY KEY,
					value TEXT NOT NULL,
					updated_at TIMESTAMP DEFAULT NOW()
				);
			`,
			Down: `
				DROP TABLE IF EXISTS burndown_settings;
				DROP TABLE IF EXISTS closed_statuses;
			`,
		},
	}
}
