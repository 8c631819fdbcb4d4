// Package models defines the core domain entities for DaRoommate.
//
// # Entities
//
//   - Room: a shared living space grouping members, chores, utilities,
//     ledger entries and grocery lists
//   - Membership: a user's association with a room, carrying a ranked Role
//   - ChoreTemplate / ChoreInstance: a recurring task definition and its
//     materialized due occurrences
//   - Utility: a shared bill with an equal-split snapshot over members
//   - LedgerEntry / LedgerSplit: room expenses with per-member splits and
//     payment tracking
//   - GroceryList / GroceryItem: shared shopping lists with purchase state
//
// # Design principles
//
//  1. Money is integer cents (int64) everywhere; split sums must be exact.
//  2. Roles, states and distribution strategies are closed string enums so
//     invalid states are unrepresentable.
//  3. Relationships use ID strings, never pointers, to avoid cycles.
//  4. Memberships are never hard-deleted; LEFT/REMOVED states preserve
//     historical attribution on utilities and ledger splits.
package models
