package cmd

const DESCRIPTION = `
lotbump keeps the lots of a FunPay seller account at the top of their
categories. It signs in with cookies exported from a browser, finds every
category the account sells in and raises them one by one, then waits for
the cooldown and starts over.
`

const (
	RunDescription = `The run command signs in and raises every category of the
account forever. It is also what lotbump does when no command is given.

Settings are read from config.ini (see --config). A failed sweep is
logged and retried after the backoff; Ctrl+C stops the loop.

Example:
        lotbump
                OR
        lotbump run --cookies-from ~/.mozilla/firefox/x.default/cookies.sqlite

`
	CheckDescription = `The check command signs in once and prints the account id.
Use it to verify that the exported cookies are still valid.

Example:
        lotbump check

`
	CategoriesDescription = `The categories command signs in and prints the category
pages that would be raised, one per line, without raising them.

Example:
        lotbump categories

`
	VaultDescription = `The vault command keeps the cookie export encrypted on disk.
The key is kept in the system keyring, or read as hex from
$LOTBUMP_VAULT_KEY. Use "lotbump run --vault" to sign in with it.

Example:
        lotbump vault store cookies.txt
        lotbump vault clear

`
)
