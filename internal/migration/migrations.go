package migration

// getAllMigrations retorna todas as migrações disponíveis
func getAllMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_base_tables",
			Up: `
				CREATE TABLE IF NOT EXISTS pendientes (
					id {{id}},
					fecha TEXT NOT NULL,
					actividad TEXT NOT NULL,
					descripcion TEXT,
					empresa TEXT,
					estado TEXT DEFAULT 'Pendiente',
					observaciones TEXT,
					fecha_limite TEXT,
					email_notificacion TEXT
				);

				CREATE TABLE IF NOT EXISTS clientes (
					id {{id}},
					empresa TEXT NOT NULL,
					observaciones TEXT
				);

				CREATE TABLE IF NOT EXISTS client_tasks (
					id {{id}},
					client_id INTEGER NOT NULL,
					description TEXT NOT NULL,
					completed INTEGER DEFAULT 0
				);
			`,
			Down: `
				DROP TABLE IF EXISTS client_tasks;
				DROP TABLE IF EXISTS clientes;
				DROP TABLE IF EXISTS pendientes;
			`,
		},
		{
			Version:    2,
			Name:       "add_clientes_check_estado",
			Up:         `ALTER TABLE clientes ADD COLUMN check_estado INTEGER DEFAULT 0`,
			Down:       `ALTER TABLE clientes DROP COLUMN check_estado`,
			AddsColumn: true,
		},
		{
			Version:    3,
			Name:       "add_clientes_procedimiento",
			Up:         `ALTER TABLE clientes ADD COLUMN procedimiento TEXT`,
			Down:       `ALTER TABLE clientes DROP COLUMN procedimiento`,
			AddsColumn: true,
		},
		{
			Version:    4,
			Name:       "add_clientes_estado",
			Up:         `ALTER TABLE clientes ADD COLUMN estado TEXT DEFAULT 'Pendiente'`,
			Down:       `ALTER TABLE clientes DROP COLUMN estado`,
			AddsColumn: true,
		},
		{
			Version:    5,
			Name:       "add_pendientes_dias_antes_notificacion",
			Up:         `ALTER TABLE pendientes ADD COLUMN dias_antes_notificacion INTEGER DEFAULT 3`,
			Down:       `ALTER TABLE pendientes DROP COLUMN dias_antes_notificacion`,
			AddsColumn: true,
		},
		{
			// SQLite não aceita default não constante em ADD COLUMN;
			// os inserts preenchem created_at explicitamente.
			Version:    6,
			Name:       "add_client_tasks_created_at",
			Up:         `ALTER TABLE client_tasks ADD COLUMN created_at TEXT`,
			Down:       `ALTER TABLE client_tasks DROP COLUMN created_at`,
			AddsColumn: true,
		},
		{
			Version:    7,
			Name:       "add_pendientes_cc_emails",
			Up:         `ALTER TABLE pendientes ADD COLUMN cc_emails TEXT`,
			Down:       `ALTER TABLE pendientes DROP COLUMN cc_emails`,
			AddsColumn: true,
		},
		{
			Version:    8,
			Name:       "add_pendientes_ultima_notificacion",
			Up:         `ALTER TABLE pendientes ADD COLUMN ultima_notificacion TEXT`,
			Down:       `ALTER TABLE pendientes DROP COLUMN ultima_notificacion`,
			AddsColumn: true,
		},
		{
			Version: 9,
			Name:    "create_indexes",
			Up: `
				CREATE INDEX IF NOT EXISTS idx_client_tasks_client_id ON client_tasks(client_id);
				CREATE INDEX IF NOT EXISTS idx_pendientes_fecha_limite ON pendientes(fecha_limite);
				CREATE INDEX IF NOT EXISTS idx_clientes_empresa ON clientes(empresa);
			`,
			Down: `
				DROP INDEX IF EXISTS idx_clientes_empresa;
				DROP INDEX IF EXISTS idx_pendientes_fecha_limite;
				DROP INDEX IF EXISTS idx_client_tasks_client_id;
			`,
		},
	}
}
