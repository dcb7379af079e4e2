// Package vault keeps a cookie export on disk encrypted with AES-GCM.
// The key lives in the operating system keyring, or is supplied as hex in
// the LOTBUMP_VAULT_KEY environment variable for headless hosts.
package vault
