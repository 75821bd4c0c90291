// Package storage is the persistence gateway of ContactPro.
//
// The gateway stores three text documents under well-known keys: the contact
// collection (KeyContacts), the single backup snapshot (KeyBackup) and the
// theme preference (KeyTheme). KVGateway persists them in the local SQLite
// database opened by InitDatabase; MemoryGateway keeps them in a map and is
// used by tests.
package storage
