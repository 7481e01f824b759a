package store

// Store keys shared with every tier.
const (
	KeyUsers       = "users"
	KeyCurrentUser = "current_user"
	KeyResetTokens = "reset_tokens"

	accountsKeyPrefix     = "accounts_"
	transactionsKeyPrefix = "transactions_"
	idDocumentKeyPrefix   = "id_documents_"
)

// AccountsKey returns the key holding the accounts of userID.
func AccountsKey(userID string) string {
	return accountsKeyPrefix + userID
}

// TransactionsKey returns the key holding the transactions of userID.
func TransactionsKey(userID string) string {
	return transactionsKeyPrefix + userID
}

// IDDocumentKey returns the key holding the ID document of userID.
func IDDocumentKey(userID string) string {
	return idDocumentKeyPrefix + userID
}
