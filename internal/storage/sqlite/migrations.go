package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist. Rooms must be created
// first; every other table hangs off rooms via ON DELETE CASCADE so a
// single room delete removes the whole subtree atomically.
const schema = `
CREATE TABLE IF NOT EXISTS rooms (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    address TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    code TEXT NOT NULL UNIQUE,
    created_by TEXT NOT NULL,
    state TEXT NOT NULL DEFAULT 'ACTIVE',
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS memberships (
    id TEXT PRIMARY KEY,
    room_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    display_name TEXT NOT NULL DEFAULT '',
    role TEXT NOT NULL,
    state TEXT NOT NULL DEFAULT 'ACTIVE',
    joined_at INTEGER NOT NULL,
    FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS invitations (
    id TEXT PRIMARY KEY,
    room_id TEXT NOT NULL,
    invited_by TEXT NOT NULL,
    email TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS chore_templates (
    id TEXT PRIMARY KEY,
    room_id TEXT NOT NULL,
    name TEXT NOT NULL,
    frequency_count INTEGER NOT NULL,
    frequency_unit TEXT NOT NULL,
    deadline INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS chore_instances (
    id TEXT PRIMARY KEY,
    room_id TEXT NOT NULL,
    template_id TEXT NOT NULL,
    name TEXT NOT NULL,
    due_at INTEGER NOT NULL,
    FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE,
    FOREIGN KEY (template_id) REFERENCES chore_templates(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS utilities (
    id TEXT PRIMARY KEY,
    room_id TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    price_cents INTEGER NOT NULL,
    distribution TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS utility_shares (
    utility_id TEXT NOT NULL,
    member_id TEXT NOT NULL,
    amount_cents INTEGER NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (utility_id, member_id),
    FOREIGN KEY (utility_id) REFERENCES utilities(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS ledger_entries (
    id TEXT PRIMARY KEY,
    room_id TEXT NOT NULL,
    created_by TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    entry_type TEXT NOT NULL,
    total_cents INTEGER NOT NULL,
    split_type TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'PENDING',
    due_date INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS ledger_splits (
    id TEXT PRIMARY KEY,
    entry_id TEXT NOT NULL,
    member_id TEXT NOT NULL,
    owed_cents INTEGER NOT NULL,
    paid_cents INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'UNPAID',
    paid_at INTEGER NOT NULL DEFAULT 0,
    notes TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (entry_id) REFERENCES ledger_entries(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS grocery_lists (
    id TEXT PRIMARY KEY,
    room_id TEXT NOT NULL,
    name TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'ACTIVE',
    created_by TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    completed_at INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS grocery_items (
    id TEXT PRIMARY KEY,
    list_id TEXT NOT NULL,
    name TEXT NOT NULL,
    quantity TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    purchased INTEGER NOT NULL DEFAULT 0,
    added_by TEXT NOT NULL,
    purchased_by TEXT NOT NULL DEFAULT '',
    actual_price_cents INTEGER NOT NULL DEFAULT 0,
    purchased_at INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (list_id) REFERENCES grocery_lists(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_memberships_room_id ON memberships(room_id);
CREATE INDEX IF NOT EXISTS idx_memberships_user_id ON memberships(user_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_memberships_active_user
    ON memberships(room_id, user_id) WHERE state = 'ACTIVE';
CREATE INDEX IF NOT EXISTS idx_chore_instances_room ON chore_instances(room_id, name);
CREATE INDEX IF NOT EXISTS idx_utilities_room_id ON utilities(room_id);
CREATE INDEX IF NOT EXISTS idx_utility_shares_member ON utility_shares(member_id);
CREATE INDEX IF NOT EXISTS idx_ledger_entries_room_id ON ledger_entries(room_id);
CREATE INDEX IF NOT EXISTS idx_ledger_splits_entry_id ON ledger_splits(entry_id);
CREATE INDEX IF NOT EXISTS idx_ledger_splits_member_id ON ledger_splits(member_id);
CREATE INDEX IF NOT EXISTS idx_grocery_lists_room_id ON grocery_lists(room_id);
CREATE INDEX IF NOT EXISTS idx_grocery_items_list_id ON grocery_items(list_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
