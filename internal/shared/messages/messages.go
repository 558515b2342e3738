// Package messages holds every user-facing string in one place.
// The product ships in Brazilian Portuguese; internal logs stay in English.
package messages

import "fmt"

const (
	ErrUnauthenticated       = "Usuário não autenticado"
	ErrWalletNotFound        = "Carteira não encontrada"
	ErrDefaultWallet         = "Não é possível excluir a carteira padrão. Defina outra carteira como padrão antes de excluir esta."
	ErrWalletHasTransactions = "Esta carteira possui transações vinculadas e não pode ser excluída no modo seguro"
	ErrWalletHasTransfers    = "Esta carteira possui transferências vinculadas e não pode ser excluída no modo seguro"
	ErrTransferNotFound      = "Transferência não encontrada"
	ErrSameWallet            = "As carteiras de origem e destino devem ser diferentes"
	ErrInsufficientFunds     = "Saldo insuficiente na carteira de origem"
	ErrTransactionNotFound   = "Transação não encontrada"
	ErrCategoryNotFound      = "Categoria não encontrada"
	ErrRuleNotFound          = "Recorrência não encontrada"
	ErrInvalidPayload        = "Dados inválidos"
	ErrInvalidCredentials    = "E-mail ou senha inválidos"
	ErrEmailTaken            = "Este e-mail já está cadastrado"
	ErrInternal              = "Não foi possível concluir a operação, tente novamente"

	WalletDeleted                  = "Carteira excluída com sucesso"
	NotificationWalletDeletedTitle = "Carteira excluída"
)

// CascadeSummary reports what a cascade deletion removed, for confirmation UI.
func CascadeSummary(transactions, transfers int64) string {
	return fmt.Sprintf("Carteira excluída com sucesso: %d transações e %d transferências removidas", transactions, transfers)
}

// NotificationWalletDeletedBody is the push notification body for a cascade deletion.
func NotificationWalletDeletedBody(walletName string, transactions, transfers int64) string {
	return fmt.Sprintf("A carteira %q foi excluída junto com %d transações e %d transferências", walletName, transactions, transfers)
}
