// Command preview assembles the Shopify product for one NetSuite SKU and
// prints it, optionally submitting it afterwards.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"shopify-product-service/internal/clients/netsuite"
	"shopify-product-service/internal/clients/shopify"
	"shopify-product-service/internal/config"
	"shopify-product-service/internal/secrets"
	"shopify-product-service/internal/services"
)

type output struct {
	Product interface{}             `json:"product"`
	Summary services.ProductSummary `json:"summary"`
	Created interface{}             `json:"created,omitempty"`
}

func main() {
	store := flag.String("store", "retail", "target store")
	sku := flag.String("sku", "", "item SKU to preview")
	submit := flag.Bool("submit", false, "submit the product after previewing it")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *sku == "" {
		fmt.Fprintln(os.Stderr, "usage: preview -store <store> -sku <sku> [-submit]")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	items := netsuite.NewClient(netsuite.Config{
		BaseURL:          cfg.ResolvedNetSuiteBaseURL(netsuite.BaseURLForAccount),
		AccessToken:      cfg.NetSuiteAccessToken,
		RateLimit:        cfg.NetSuiteRateLimit,
		Timeout:          cfg.NetSuiteTimeout,
		ChildConcurrency: cfg.NetSuiteChildConcurrency,
	}, logger)

	var reader secrets.SecretReader
	if cfg.GCPProjectID != "" && cfg.ShopifyProductSecretName != "" {
		sm, err := secrets.NewGCPSecretManager(ctx, cfg.GCPProjectID)
		if err != nil {
			logger.WithError(err).Warn("Secret Manager unavailable")
		} else {
			defer sm.Close()
			reader = sm
		}
	}
	submitter := shopify.NewProductClient(cfg.ShopifyProductEndpoint,
		secrets.NewProductSecretResolver(reader, cfg.ShopifyProductSecretName, cfg.ShopifyProductSecret),
		cfg.ShopifySubmitTimeout, logger)

	svc := services.NewProductService(services.NewFieldMapper(nil), items, submitter, logger)

	product, err := svc.Preview(ctx, *store, *sku)
	if err != nil {
		logger.WithError(err).Fatal("Preview failed")
	}
	out := output{Product: product, Summary: services.Summarize(product)}

	if *submit {
		created, err := svc.Submit(ctx, *store, product)
		if err != nil {
			logger.WithError(err).Fatal("Submit failed")
		}
		out.Created = created.Product
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.WithError(err).Fatal("Failed to write output")
	}
}
