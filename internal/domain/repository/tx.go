package repository

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Inventory    IngredientInventoryRepository
	Transactions InventoryTransactionRepository
	Orders       OrderRepository
	Refunds      RefundLogRepository
}
