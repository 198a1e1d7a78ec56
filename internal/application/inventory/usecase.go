package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/cafe-pos-api/internal/domain/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
	"github.com/jhoicas/cafe-pos-api/pkg/format"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
)

// InventoryUseCase motor de inventario por recetas: disponibilidad, descuento por venta,
// reposición, merma y ajuste. Toda escritura ocurre dentro de TxRunner.Run con las filas
// de inventario bloqueadas (SELECT FOR UPDATE) en orden ascendente de ingrediente.
type InventoryUseCase struct {
	txRunner       TxRunner
	ingredientRepo repository.IngredientRepository
	inventoryRepo  repository.IngredientInventoryRepository
	recipeRepo     repository.RecipeRepository
	productRepo    repository.ProductRepository
	txLogRepo      repository.InventoryTransactionRepository
	printer        *format.Printer
	log            *logger.Logger
	now            func() time.Time
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	txRunner TxRunner,
	ingredientRepo repository.IngredientRepository,
	inventoryRepo repository.IngredientInventoryRepository,
	recipeRepo repository.RecipeRepository,
	productRepo repository.ProductRepository,
	txLogRepo repository.InventoryTransactionRepository,
	printer *format.Printer,
	log *logger.Logger,
) *InventoryUseCase {
	if printer == nil {
		printer = format.New(format.DefaultLocale)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &InventoryUseCase{
		txRunner:       txRunner,
		ingredientRepo: ingredientRepo,
		inventoryRepo:  inventoryRepo,
		recipeRepo:     recipeRepo,
		productRepo:    productRepo,
		txLogRepo:      txLogRepo,
		printer:        printer,
		log:            log.WithComponent("inventory"),
		now:            time.Now,
	}
}

// CheckAvailability indica si hay stock para producir quantity unidades del producto y cuántas
// unidades se pueden producir como máximo. MaxQuantity = -1 si ningún ingrediente controlado participa.
func (uc *InventoryUseCase) CheckAvailability(ctx context.Context, productID string, quantity int64) (*dto.AvailabilityResult, error) {
	ctx, span := tracer.Start(ctx, "inventory.CheckAvailability")
	span.SetAttributes(attribute.String("product.id", productID), attribute.Int64("quantity", quantity))
	var err error
	defer func() { endSpan(span, err) }()

	if quantity < 0 {
		err = domain.ErrInvalidQuantity
		return nil, err
	}
	product, perUnit, err := uc.productDemand(ctx, productID)
	if err != nil {
		return nil, err
	}
	stock, err := uc.stockSnapshot(ctx, perUnit)
	if err != nil {
		return nil, err
	}

	av := domaininv.Evaluate(perUnit, stock, quantity)
	res := &dto.AvailabilityResult{
		ProductID:         product.ID,
		ProductName:       product.Name,
		RequestedQuantity: quantity,
		CanProduce:        av.CanProduce,
		MaxQuantity:       av.MaxQuantity,
	}
	if av.Limiting != nil {
		s := shortageDTO(*av.Limiting)
		res.LimitingIngredient = &s
	}
	res.Message = uc.availabilityMessage(product, av)
	span.SetAttributes(attribute.Bool("can_produce", av.CanProduce), attribute.Int64("max_quantity", av.MaxQuantity))
	return res, nil
}

// CheckItems calcula la demanda combinada de varias líneas (por ingrediente) y la compara con el
// stock actual. Devuelve la lista de faltantes; vacía si todo el conjunto es satisfacible a la vez.
func (uc *InventoryUseCase) CheckItems(ctx context.Context, items []dto.ItemQuantity) ([]dto.ShortageDTO, error) {
	demand, err := uc.itemsDemand(ctx, items)
	if err != nil {
		return nil, err
	}
	stock, err := uc.stockSnapshot(ctx, demand)
	if err != nil {
		return nil, err
	}
	return shortageDTOs(domaininv.Shortages(demand, stock)), nil
}

// LockItems bloquea dentro de la transacción del caller todas las filas de inventario que tocan las
// líneas, en orden ascendente de ingrediente, y revalida la demanda combinada bajo esos bloqueos.
func (uc *InventoryUseCase) LockItems(ctx context.Context, repos repository.TxRepos, items []dto.ItemQuantity) ([]dto.ShortageDTO, error) {
	demand, err := uc.itemsDemand(ctx, items)
	if err != nil {
		return nil, err
	}
	stock := make(map[string]decimal.Decimal, len(demand))
	for _, r := range demand {
		inv, err := repos.Inventory.GetForUpdate(ctx, r.IngredientID)
		if err != nil {
			return nil, err
		}
		if inv != nil {
			stock[r.IngredientID] = inv.CurrentStock
		}
	}
	return shortageDTOs(domaininv.Shortages(demand, stock)), nil
}

// DeductForProduct descuenta atómicamente los ingredientes de quantity unidades del producto.
// Si cualquier ingrediente no alcanza no se escribe nada: Success=false y error ErrInsufficientStock.
func (uc *InventoryUseCase) DeductForProduct(ctx context.Context, req dto.DeductRequest) (*dto.DeductResult, error) {
	ctx, span := tracer.Start(ctx, "inventory.DeductForProduct")
	span.SetAttributes(attribute.String("product.id", req.ProductID), attribute.Int64("quantity", req.Quantity))
	var err error
	defer func() { endSpan(span, err) }()

	var res *dto.DeductResult
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		var txErr error
		res, txErr = uc.DeductInTx(ctx, repos, req)
		return txErr
	})
	if err != nil {
		if res == nil {
			res = &dto.DeductResult{ProductID: req.ProductID, Quantity: req.Quantity, Message: err.Error()}
		}
		res.Success = false
		res.Changes = nil
		return res, err
	}
	return res, nil
}

// DeductInTx descuenta los ingredientes del producto usando los repositorios de la transacción del
// caller (processOrder la usa por cada línea). Bloquea cada fila, revalida bajo el bloqueo y solo
// entonces escribe; ante faltantes no escribe nada y devuelve ErrInsufficientStock.
func (uc *InventoryUseCase) DeductInTx(ctx context.Context, repos repository.TxRepos, req dto.DeductRequest) (*dto.DeductResult, error) {
	res := &dto.DeductResult{ProductID: req.ProductID, Quantity: req.Quantity}
	if req.Quantity < 1 {
		res.Message = domain.ErrInvalidQuantity.Error()
		return res, domain.ErrInvalidQuantity
	}
	product, perUnit, err := uc.productDemand(ctx, req.ProductID)
	if err != nil {
		res.Message = err.Error()
		return res, err
	}
	reqs := domaininv.Scale(perUnit, req.Quantity)
	if len(reqs) == 0 {
		res.Success = true
		res.Message = uc.printer.Sprintf("%s no consume ingredientes controlados", product.Name)
		return res, nil
	}

	// reqs viene ordenado por ingrediente: orden de bloqueo estable entre transacciones concurrentes
	locked := make(map[string]*entity.IngredientInventory, len(reqs))
	stock := make(map[string]decimal.Decimal, len(reqs))
	for _, r := range reqs {
		inv, err := repos.Inventory.GetForUpdate(ctx, r.IngredientID)
		if err != nil {
			res.Message = err.Error()
			return res, err
		}
		if inv == nil {
			continue
		}
		locked[r.IngredientID] = inv
		stock[r.IngredientID] = inv.CurrentStock
	}

	if shortages := domaininv.Shortages(reqs, stock); len(shortages) > 0 {
		res.Shortages = shortageDTOs(shortages)
		res.Message = uc.shortageMessage(shortages[0])
		uc.log.Warn().
			Str("product_id", product.ID).
			Int64("quantity", req.Quantity).
			Str("ingredient", shortages[0].IngredientName).
			Str("reason", shortages[0].Reason).
			Msg("descuento rechazado por stock insuficiente")
		return res, fmt.Errorf("%w: %s", domain.ErrInsufficientStock, shortages[0].IngredientName)
	}

	now := uc.now()
	var orderItemID *string
	if req.OrderItemID != "" {
		id := req.OrderItemID
		orderItemID = &id
	}
	reason := uc.printer.Sprintf("venta: %s x%d", product.Name, req.Quantity)
	for _, r := range reqs {
		inv := locked[r.IngredientID]
		prev := inv.CurrentStock
		inv.CurrentStock = prev.Sub(r.Quantity).Round(domaininv.StockPrecision)
		inv.UpdatedAt = now
		if err := repos.Inventory.Update(ctx, inv); err != nil {
			res.Message = err.Error()
			return res, err
		}
		txLog := &entity.InventoryTransaction{
			ID:             uuid.New().String(),
			IngredientID:   r.IngredientID,
			Type:           entity.TransactionTypeUsage,
			QuantityChange: r.Quantity.Neg(),
			PreviousStock:  prev,
			NewStock:       inv.CurrentStock,
			UnitCost:       inv.UnitCost,
			Reason:         reason,
			OrderItemID:    orderItemID,
			UserID:         req.UserID,
			CreatedAt:      now,
		}
		if err := repos.Transactions.Create(ctx, txLog); err != nil {
			res.Message = err.Error()
			return res, err
		}
		res.Changes = append(res.Changes, dto.StockChangeDTO{
			IngredientID:   r.IngredientID,
			IngredientName: r.IngredientName,
			Unit:           string(r.Unit),
			QuantityChange: txLog.QuantityChange,
			PreviousStock:  prev,
			NewStock:       inv.CurrentStock,
		})
	}

	res.Success = true
	res.Message = uc.printer.Sprintf("Inventario descontado para %s x%d", product.Name, req.Quantity)
	uc.log.Info().
		Str("product_id", product.ID).
		Int64("quantity", req.Quantity).
		Int("ingredients", len(res.Changes)).
		Str("order_item_id", req.OrderItemID).
		Msg("inventario descontado")
	return res, nil
}

// productDemand carga producto y receta y devuelve el consumo por unidad ya normalizado.
func (uc *InventoryUseCase) productDemand(ctx context.Context, productID string) (*entity.Product, []domaininv.Requirement, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	lines, err := uc.recipeRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	perUnit, err := domaininv.RecipeDemand(lines)
	if err != nil {
		return nil, nil, fmt.Errorf("producto %s: %w", product.Name, err)
	}
	return product, perUnit, nil
}

// itemsDemand suma por ingrediente la demanda de todas las líneas.
func (uc *InventoryUseCase) itemsDemand(ctx context.Context, items []dto.ItemQuantity) ([]domaininv.Requirement, error) {
	groups := make([][]domaininv.Requirement, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: línea %s", domain.ErrInvalidQuantity, it.OrderItemID)
		}
		_, perUnit, err := uc.productDemand(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		groups = append(groups, domaininv.Scale(perUnit, it.Quantity))
	}
	return domaininv.Merge(groups...), nil
}

// stockSnapshot lee sin bloquear el stock de los ingredientes requeridos.
// Los ingredientes sin registro de inventario no aparecen en el mapa.
func (uc *InventoryUseCase) stockSnapshot(ctx context.Context, reqs []domaininv.Requirement) (map[string]decimal.Decimal, error) {
	stock := make(map[string]decimal.Decimal, len(reqs))
	for _, r := range reqs {
		inv, err := uc.inventoryRepo.GetByIngredient(ctx, r.IngredientID)
		if err != nil {
			return nil, err
		}
		if inv != nil {
			stock[r.IngredientID] = inv.CurrentStock
		}
	}
	return stock, nil
}

// loadTrackable devuelve el ingrediente si existe y maneja inventario.
func (uc *InventoryUseCase) loadTrackable(ctx context.Context, ingredientID string) (*entity.Ingredient, error) {
	ing, err := uc.ingredientRepo.GetByID(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, ingredientID)
	}
	if !ing.IsTrackable {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotTrackable, ing.Name)
	}
	return ing, nil
}

func (uc *InventoryUseCase) availabilityMessage(product *entity.Product, av domaininv.Availability) string {
	switch {
	case av.MaxQuantity == domaininv.Unlimited:
		return uc.printer.Sprintf("%s disponible: no consume ingredientes controlados", product.Name)
	case av.CanProduce:
		return uc.printer.Sprintf("%s disponible: alcanza para %d unidades", product.Name, av.MaxQuantity)
	case av.Limiting != nil && av.Limiting.Reason == domaininv.ReasonNoInventory:
		return uc.printer.Sprintf("%s no disponible: %s no tiene registro de inventario", product.Name, av.Limiting.IngredientName)
	case av.Limiting != nil:
		return uc.printer.Sprintf("%s no disponible: %s alcanza para %d unidades (requiere %s por unidad, hay %s)",
			product.Name, av.Limiting.IngredientName, av.MaxQuantity,
			uc.printer.Quantity(av.Limiting.Quantity, av.Limiting.Unit),
			uc.printer.Quantity(av.Limiting.Available, av.Limiting.Unit))
	}
	return uc.printer.Sprintf("%s no disponible", product.Name)
}

func (uc *InventoryUseCase) shortageMessage(s domaininv.Shortage) string {
	if s.Reason == domaininv.ReasonNoInventory {
		return uc.printer.Sprintf("Stock insuficiente: %s no tiene registro de inventario", s.IngredientName)
	}
	return uc.printer.Sprintf("Stock insuficiente de %s: requiere %s, disponible %s",
		s.IngredientName, uc.printer.Quantity(s.Quantity, s.Unit), uc.printer.Quantity(s.Available, s.Unit))
}

func shortageDTO(s domaininv.Shortage) dto.ShortageDTO {
	return dto.ShortageDTO{
		IngredientID:   s.IngredientID,
		IngredientName: s.IngredientName,
		Unit:           string(s.Unit),
		Required:       s.Quantity,
		Available:      s.Available,
		Reason:         s.Reason,
	}
}

func shortageDTOs(in []domaininv.Shortage) []dto.ShortageDTO {
	if len(in) == 0 {
		return nil
	}
	out := make([]dto.ShortageDTO, len(in))
	for i, s := range in {
		out[i] = shortageDTO(s)
	}
	return out
}
