// Command tienda is the terminal storefront: it browses the catalog, keeps
// the persisted cart and runs the checkout against the KameHouse API.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamehouse-store/storefront/cart"
	"github.com/kamehouse-store/storefront/catalog"
	"github.com/kamehouse-store/storefront/checkout"
	"github.com/kamehouse-store/storefront/receipt"
	"github.com/kamehouse-store/storefront/storage"
)

// app bundles the wired client components for the command handlers.
type app struct {
	store  storage.Store
	engine *cart.Engine
	loader *catalog.Loader
	flow   *checkout.Flow
	cfg    receipt.Config
	apiURL string
	log    *zap.Logger
}

// consoleNotifier prints engine notices the way the web client toasts them.
type consoleNotifier struct{}

func (consoleNotifier) Success(msg string) { fmt.Println("✅", msg) }
func (consoleNotifier) Error(msg string)   { fmt.Println("❌", msg) }

// stdinConfirmer asks a blocking yes/no question on the terminal.
type stdinConfirmer struct{}

func (stdinConfirmer) Confirm(prompt string) bool {
	fmt.Printf("%s ¿Continuar? [s/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "s" || answer == "si" || answer == "sí"
}

func newApp() (*app, error) {
	_ = godotenv.Load()

	logger := zap.NewNop()
	if os.Getenv("TIENDA_DEBUG") != "" {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		logger = l
	}

	dataDir := os.Getenv("TIENDA_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(home, ".kamehouse")
	}

	store, err := storage.NewFileStore(dataDir, logger)
	if err != nil {
		return nil, err
	}

	cfg := receipt.DefaultConfig()
	if v := os.Getenv("TIENDA_IVA"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil && rate >= 0 {
			cfg.TaxRate = rate
		}
	}
	if v := os.Getenv("TIENDA_MONEDA"); v != "" {
		cfg.Currency = v
	}

	apiURL := os.Getenv("TIENDA_API_URL")
	notify := consoleNotifier{}
	engine := cart.NewEngine(store, notify, stdinConfirmer{}, logger)

	return &app{
		store:  store,
		engine: engine,
		loader: catalog.NewLoader(apiURL, logger),
		flow:   checkout.New(apiURL, engine, notify, cfg, logger),
		cfg:    cfg,
		apiURL: apiURL,
		log:    logger,
	}, nil
}

// loadCatalog prefers the API and falls back to the bundled catalog with
// any locally stored stock overrides applied, like the web client does when
// the server is unreachable.
func (a *app) loadCatalog(ctx context.Context, categoria string) []catalog.Product {
	if a.apiURL != "" {
		products, err := a.loader.Load(ctx, categoria)
		if err == nil {
			return products
		}
		fmt.Printf("⚠️  No se pudo conectar con el servidor (%v), usando catálogo local\n", err)
	}

	products, err := catalog.Embedded()
	if err != nil {
		fmt.Println("❌ No se encontraron productos.")
		return nil
	}
	products = catalog.ApplyOverrides(products, catalog.LoadOverrides(a.store))
	return catalog.FilterCategory(products, categoria)
}

// comprarLocal is the offline variant of checkout: stock is decremented in
// the locally persisted override map instead of on the server.
func (a *app) comprarLocal() (*receipt.Receipt, error) {
	lines := a.engine.Lines()
	if len(lines) == 0 {
		fmt.Println("❌ No hay productos en el carrito")
		return nil, checkout.ErrEmptyCart
	}

	products, err := catalog.Embedded()
	if err != nil {
		return nil, err
	}
	overrides := catalog.LoadOverrides(a.store)
	if overrides == nil {
		overrides = make(map[string]int)
	}
	products = catalog.ApplyOverrides(products, overrides)

	for _, l := range lines {
		p, ok := catalog.FindByID(products, l.ProductID)
		if !ok {
			fmt.Printf("❌ Producto %s no encontrado\n", l.ProductID)
			return nil, cart.ErrProductNotFound
		}
		if p.Stock < l.Cantidad {
			fmt.Printf("❌ Stock insuficiente para %s. Disponible: %d, Solicitado: %d\n",
				p.Nombre, p.Stock, l.Cantidad)
			return nil, cart.ErrInsufficientStock
		}
	}

	for _, l := range lines {
		p, _ := catalog.FindByID(products, l.ProductID)
		overrides[l.ProductID] = p.Stock - l.Cantidad
	}
	if err := catalog.SaveOverrides(a.store, overrides); err != nil {
		return nil, err
	}

	rec := receipt.Generate(lines, a.cfg)
	if err := a.engine.CompletePurchase(); err != nil {
		return nil, err
	}
	fmt.Println("✅ ¡Compra realizada exitosamente!")
	return rec, nil
}

func printProducts(products []catalog.Product) {
	if len(products) == 0 {
		fmt.Println("No se encontraron productos en esta categoría.")
		return
	}
	for _, p := range products {
		estado := fmt.Sprintf("%d disponibles", p.Stock)
		switch {
		case p.Agotado():
			estado = "¡Agotado!"
		case p.Stock <= 3:
			estado = fmt.Sprintf("¡Solo %d uds!", p.Stock)
		}
		fmt.Printf("%-8s %-32s $%8.2f  [%s] %s\n", p.ID, p.Nombre, p.Precio, p.Categoria, estado)
	}
}

func main() {
	a, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}

	root := &cobra.Command{
		Use:           "tienda",
		Short:         "KameHouse storefront",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var categoria string
	catalogoCmd := &cobra.Command{
		Use:   "catalogo",
		Short: "Listar los productos de la tienda",
		RunE: func(cmd *cobra.Command, args []string) error {
			printProducts(a.loadCatalog(cmd.Context(), categoria))
			return nil
		},
	}
	catalogoCmd.Flags().StringVar(&categoria, "categoria", "todos", "filtrar por categoría")

	buscarCmd := &cobra.Command{
		Use:   "buscar <término>",
		Short: "Buscar productos por código o nombre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.apiURL != "" {
				products, err := a.loader.Search(cmd.Context(), args[0])
				if err == nil {
					printProducts(products)
					return nil
				}
				fmt.Printf("⚠️  No se pudo conectar con el servidor (%v), buscando en el catálogo local\n", err)
			}
			printProducts(catalog.FilterSearch(a.loadCatalog(cmd.Context(), ""), args[0]))
			return nil
		},
	}

	var cantidad int
	agregarCmd := &cobra.Command{
		Use:   "agregar <id>",
		Short: "Agregar un producto al carrito",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products := a.loadCatalog(cmd.Context(), "")
			// Rejections already notified the user; they are not CLI failures
			_ = a.engine.Add(args[0], products, cantidad)
			fmt.Printf("🛒 Artículos en el carrito: %d\n", a.engine.Count())
			return nil
		},
	}
	agregarCmd.Flags().IntVarP(&cantidad, "cantidad", "n", 1, "unidades a agregar")

	carritoCmd := &cobra.Command{
		Use:   "carrito",
		Short: "Ver el carrito",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := a.engine.Lines()
			if len(lines) == 0 {
				fmt.Println("Tu carrito está vacío.")
				return nil
			}
			for _, l := range lines {
				fmt.Printf("%-8s %-32s x%-3d $%8.2f\n", l.ProductID, l.Nombre, l.Cantidad, l.Subtotal())
			}
			fmt.Printf("Total: $%.2f (%d artículos)\n", a.engine.Total(), a.engine.Count())
			return nil
		},
	}

	quitarCmd := &cobra.Command{
		Use:   "quitar <id>",
		Short: "Quitar un producto del carrito",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.engine.Remove(args[0])
		},
	}

	vaciarCmd := &cobra.Command{
		Use:   "vaciar",
		Short: "Vaciar el carrito",
		RunE: func(cmd *cobra.Command, args []string) error {
			emptied, err := a.engine.Empty()
			if err != nil {
				return err
			}
			if emptied {
				fmt.Println("Tu carrito está vacío.")
			}
			return nil
		},
	}

	var facturaDir string
	comprarCmd := &cobra.Command{
		Use:   "comprar",
		Short: "Finalizar la compra",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("⏳ Procesando...")
			var rec *receipt.Receipt
			var err error
			if a.apiURL != "" {
				rec, err = a.flow.Purchase(cmd.Context())
			} else {
				rec, err = a.comprarLocal()
			}
			if err != nil {
				// The flow already surfaced the notice
				return nil
			}
			fmt.Print(rec.Render())
			if facturaDir != "" {
				path, err := rec.ExportTxt(facturaDir)
				if err != nil {
					return err
				}
				fmt.Printf("📄 Factura guardada en %s\n", path)
			}
			return nil
		},
	}
	comprarCmd.Flags().StringVar(&facturaDir, "guardar", "", "directorio donde exportar la factura")

	root.AddCommand(catalogoCmd, buscarCmd, agregarCmd, carritoCmd, quitarCmd, vaciarCmd, comprarCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
