package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"souqlink/internal/domain"
	"souqlink/internal/logger"
	"souqlink/internal/shopper"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// shopctl drives a local cart and favorites profile against a running
// catalog API. State lives in a profile directory on disk, so closing
// the terminal does not lose the cart.
func main() {
	log := logger.NewWithDefaults()
	defer log.Sync()

	cmd := &cli.Command{
		Name:  "shopctl",
		Usage: "Manage a local shopping cart and favorites for the storefront",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "state-dir",
				Value: defaultStateDir(),
				Usage: "directory holding the persisted cart and favorites",
			},
			&cli.StringFlag{
				Name:  "api",
				Value: "http://localhost:8080",
				Usage: "base URL of the catalog API",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a product to the cart (or bump its quantity)",
				ArgsUsage: "<product-id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id := c.Args().First()
					if id == "" {
						return cli.Exit("product id required", 1)
					}
					product, err := fetchProduct(ctx, c.String("api"), id)
					if err != nil {
						return err
					}
					cart, err := openCart(c, log)
					if err != nil {
						return err
					}
					cart.Add(shopper.CartItem{
						ProductID:    product.ID,
						Title:        product.Title,
						Price:        product.Price,
						Image:        product.Image,
						AffiliateURL: product.AffiliateURL,
					})
					fmt.Printf("Added %q. Cart now holds %d item(s).\n", product.Title, cart.TotalItemCount())
					return nil
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove a product from the cart",
				ArgsUsage: "<product-id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id := c.Args().First()
					if id == "" {
						return cli.Exit("product id required", 1)
					}
					cart, err := openCart(c, log)
					if err != nil {
						return err
					}
					cart.Remove(id)
					fmt.Printf("Cart now holds %d item(s).\n", cart.TotalItemCount())
					return nil
				},
			},
			{
				Name:      "set-qty",
				Usage:     "Set the quantity of a cart line (0 removes it)",
				ArgsUsage: "<product-id> <quantity>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id := c.Args().Get(0)
					rawQty := c.Args().Get(1)
					if id == "" || rawQty == "" {
						return cli.Exit("product id and quantity required", 1)
					}
					qty, err := strconv.Atoi(rawQty)
					if err != nil {
						return cli.Exit(fmt.Sprintf("invalid quantity %q", rawQty), 1)
					}
					cart, err := openCart(c, log)
					if err != nil {
						return err
					}
					cart.SetQuantity(id, qty)
					fmt.Printf("Cart now holds %d item(s).\n", cart.TotalItemCount())
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "Empty the cart",
				Action: func(ctx context.Context, c *cli.Command) error {
					cart, err := openCart(c, log)
					if err != nil {
						return err
					}
					cart.Clear()
					fmt.Println("Cart cleared.")
					return nil
				},
			},
			{
				Name:  "show",
				Usage: "Print the cart lines and total",
				Action: func(ctx context.Context, c *cli.Command) error {
					cart, err := openCart(c, log)
					if err != nil {
						return err
					}
					items := cart.Items()
					if len(items) == 0 {
						fmt.Println("Cart is empty.")
						return nil
					}
					for _, item := range items {
						fmt.Printf("%-12s x%-3d %-40s %s\n", item.ProductID, item.Quantity, item.Title, item.Price.StringFixed(2))
					}
					fmt.Printf("Total: %s (%d item(s))\n", cart.FormattedTotal(), cart.TotalItemCount())
					return nil
				},
			},
			{
				Name:      "fav",
				Usage:     "Toggle a product in the favorites list",
				ArgsUsage: "<product-id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id := c.Args().First()
					if id == "" {
						return cli.Exit("product id required", 1)
					}
					favorites, err := openFavorites(c, log)
					if err != nil {
						return err
					}
					if favorites.Toggle(id) {
						fmt.Printf("%s is now a favorite (%d total).\n", id, favorites.Count())
					} else {
						fmt.Printf("%s removed from favorites (%d left).\n", id, favorites.Count())
					}
					return nil
				},
			},
			{
				Name:  "favs",
				Usage: "List favorite product ids",
				Action: func(ctx context.Context, c *cli.Command) error {
					favorites, err := openFavorites(c, log)
					if err != nil {
						return err
					}
					ids := favorites.IDs()
					if len(ids) == 0 {
						fmt.Println("No favorites yet.")
						return nil
					}
					for _, id := range ids {
						fmt.Println(id)
					}
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Error("Command failed", zap.Error(err))
		os.Exit(1)
	}
}

func defaultStateDir() string {
	if dir := os.Getenv("SHOPPER_STATE_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".souqlink"
	}
	return home + "/.souqlink"
}

func openStorage(c *cli.Command) (shopper.Storage, error) {
	return shopper.NewFileStorage(c.String("state-dir"))
}

func openCart(c *cli.Command, log *zap.Logger) (*shopper.Cart, error) {
	storage, err := openStorage(c)
	if err != nil {
		return nil, err
	}
	return shopper.NewCart(storage, log), nil
}

func openFavorites(c *cli.Command, log *zap.Logger) (*shopper.Favorites, error) {
	storage, err := openStorage(c)
	if err != nil {
		return nil, err
	}
	return shopper.NewFavorites(storage, log), nil
}

// fetchProduct resolves the snapshot fields for a cart line from the
// catalog API.
func fetchProduct(ctx context.Context, baseURL, id string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/products/"+id, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach catalog API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("product %s not found", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog API returned status %d", resp.StatusCode)
	}

	var product domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	return &product, nil
}
