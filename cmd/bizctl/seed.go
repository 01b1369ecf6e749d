package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Bizboard-api/internal/application/auth"
	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/application/transaction"
	"github.com/jhoicas/Bizboard-api/internal/application/usecase"
	"github.com/jhoicas/Bizboard-api/internal/domain/entity"
	"github.com/jhoicas/Bizboard-api/internal/infrastructure/postgres"
)

type seedProduct struct {
	name, category, sku string
	cost, sale          string
	stock               int
}

var demoProducts = []seedProduct{
	{"Café americano", "Bebidas", "BEB-001", "0.80", "2.50", 200},
	{"Capuchino", "Bebidas", "BEB-002", "1.10", "3.20", 150},
	{"Croissant", "Panadería", "PAN-001", "0.60", "1.90", 40},
	{"Sándwich de pavo", "Comidas", "COM-001", "2.40", "5.50", 25},
	{"Galletas de avena", "Panadería", "PAN-002", "0.30", "1.20", 8},
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Crea un usuario y negocio de demostración con productos y movimientos",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return fmt.Errorf("config: JWT_SECRET es obligatorio")
			}
			log := newLogger(cfg)
			ctx := cmd.Context()

			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			days, _ := cmd.Flags().GetInt("days")

			pool, err := openPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			if _, err := postgres.Migrate(ctx, pool); err != nil {
				return err
			}

			txRunner := postgres.NewTxRunner(pool)
			productRepo := postgres.NewProductRepository(pool)
			// Sin logo no se toca el almacén de imágenes.
			authUC := auth.NewAuthUseCase(txRunner, postgres.NewUserRepository(pool), postgres.NewBusinessRepository(pool), nil, auth.Config{
				Secret:     cfg.JWT.Secret,
				ExpMinutes: cfg.JWT.Expiration,
				Issuer:     cfg.JWT.Issuer,
			})
			productUC := usecase.NewProductUseCase(productRepo)
			transactionUC := transaction.NewUseCase(txRunner, postgres.NewTransactionRepository(pool))

			reg, err := authUC.Register(ctx, dto.RegisterRequest{
				Email:        email,
				Password:     password,
				BusinessName: "Café Demo",
				Category:     entity.BusinessCategoryRestaurant,
				Currency:     "USD",
				Timezone:     "UTC",
			}, nil)
			if err != nil {
				return fmt.Errorf("registro demo: %w", err)
			}
			businessID := reg.Business.ID
			log.Info().Str("business_id", businessID).Str("email", reg.User.Email).Msg("negocio demo creado")

			products := make([]*dto.ProductResponse, 0, len(demoProducts))
			for _, sp := range demoProducts {
				p, err := productUC.Create(ctx, businessID, dto.CreateProductRequest{
					Name:          sp.name,
					Category:      sp.category,
					SKU:           sp.sku,
					CostPrice:     decimal.RequireFromString(sp.cost),
					SalePrice:     decimal.RequireFromString(sp.sale),
					StockQuantity: sp.stock,
				})
				if err != nil {
					return fmt.Errorf("producto %s: %w", sp.sku, err)
				}
				log.Debug().Str("sku", p.SKU).Str("product_id", p.ID).Msg("producto demo creado")
				products = append(products, p)
			}

			today := time.Now().UTC().Truncate(24 * time.Hour)
			created := 0
			for d := days - 1; d >= 0; d-- {
				date := today.AddDate(0, 0, -d).Format("2006-01-02")
				for _, req := range demoDay(products, d, date) {
					if _, err := transactionUC.Create(ctx, businessID, req); err != nil {
						log.Warn().Err(err).Str("date", date).Str("category", req.Category).Msg("movimiento demo omitido")
						continue
					}
					created++
				}
			}

			log.Info().Int("products", len(products)).Int("transactions", created).Msg("datos demo cargados")
			fmt.Fprintln(cmd.OutOrStdout(), reg.Token)
			return nil
		},
	}
	cmd.Flags().String("email", "demo@bizboard.local", "email del usuario demo")
	cmd.Flags().String("password", "demo12345", "contraseña del usuario demo")
	cmd.Flags().Int("days", 14, "días de movimientos a generar (0 = ninguno)")
	return cmd
}

// demoDay arma las ventas y gastos de un día; d varía las cantidades para que las gráficas no sean planas.
func demoDay(products []*dto.ProductResponse, d int, date string) []dto.TransactionRequest {
	var out []dto.TransactionRequest

	items := make([]dto.LineItemRequest, 0, 2)
	total := decimal.Zero
	for i, p := range products[:2] {
		qty := 1 + (d+i)%3
		items = append(items, dto.LineItemRequest{ProductID: p.ID, Quantity: qty, UnitPrice: p.SalePrice})
		total = total.Add(p.SalePrice.Mul(decimal.NewFromInt(int64(qty))))
	}
	out = append(out, dto.TransactionRequest{
		Type:          string(entity.TransactionIncome),
		Category:      "Ventas",
		Amount:        total,
		Date:          date,
		PaymentMethod: entity.PaymentCash,
		Products:      items,
	})

	if d%3 == 0 {
		out = append(out, dto.TransactionRequest{
			Type:          string(entity.TransactionExpense),
			Category:      "Insumos",
			Amount:        decimal.NewFromInt(int64(20 + d)),
			Description:   "Compra de insumos",
			Date:          date,
			PaymentMethod: entity.PaymentBankTransfer,
		})
	}
	if d == 7 {
		out = append(out, dto.TransactionRequest{
			Type:          string(entity.TransactionWithdrawal),
			Category:      "Retiro del dueño",
			Amount:        decimal.NewFromInt(100),
			Date:          date,
			PaymentMethod: entity.PaymentCash,
		})
	}
	return out
}
