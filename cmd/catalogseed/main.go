package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type seedProduct struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Brand string  `json:"brand"`
	SKU   string  `json:"sku"`
}

type seedPayload struct {
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Brand  string  `json:"brand"`
	SKU    string  `json:"sku"`
	Stock  int     `json:"stock"`
	Rating float64 `json:"rating"`
}

func main() {
	var inputPath string
	var baseURL string
	var token string
	var dryRun bool
	flag.StringVar(&inputPath, "in", "", "input CSV path with name,price,vendor,sku columns (required)")
	flag.StringVar(&baseURL, "api", "https://dummyjson.com", "catalog API base URL")
	flag.StringVar(&token, "token", "", "bearer token (optional)")
	flag.BoolVar(&dryRun, "dry-run", false, "parse and validate without sending requests")
	flag.Parse()

	if inputPath == "" {
		exit(errors.New("missing --in path"))
	}

	products, err := parseSeedCSV(inputPath)
	if err != nil {
		exit(fmt.Errorf("parse csv: %w", err))
	}
	if len(products) == 0 {
		exit(errors.New("no product rows found"))
	}

	if dryRun {
		fmt.Printf("parsed %d products, skipping upload\n", len(products))
		return
	}

	client := &http.Client{Timeout: 30 * time.Second}
	created := 0
	for i, product := range products {
		if err := createProduct(client, baseURL, token, product); err != nil {
			fmt.Fprintf(os.Stderr, "catalogseed: row %d (%s): %v\n", i+2, product.Title, err)
			continue
		}
		created++
	}
	fmt.Printf("created %d of %d products\n", created, len(products))
	if created < len(products) {
		os.Exit(1)
	}
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "catalogseed: %v\n", err)
	os.Exit(1)
}

func parseSeedCSV(path string) ([]seedProduct, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	index := map[string]int{}
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"name", "price", "vendor", "sku"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing %q column", required)
		}
	}

	var products []seedProduct
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[index["price"]]), 64)
		if err != nil || price < 0 {
			return nil, fmt.Errorf("row %d: invalid price %q", len(products)+2, row[index["price"]])
		}
		name := strings.TrimSpace(row[index["name"]])
		if name == "" {
			return nil, fmt.Errorf("row %d: empty name", len(products)+2)
		}
		products = append(products, seedProduct{
			Title: name,
			Price: price,
			Brand: strings.TrimSpace(row[index["vendor"]]),
			SKU:   strings.TrimSpace(row[index["sku"]]),
		})
	}
	return products, nil
}

func createProduct(client *http.Client, baseURL, token string, product seedProduct) error {
	payload := seedPayload{
		Title:  product.Title,
		Price:  product.Price,
		Brand:  product.Brand,
		SKU:    product.SKU,
		Stock:  1,
		Rating: 0,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	request, err := http.NewRequest(http.MethodPost, strings.TrimRight(baseURL, "/")+"/products/add", bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		message := strings.TrimSpace(string(raw))
		if message == "" {
			message = response.Status
		}
		return fmt.Errorf("request failed: %s", message)
	}
	return nil
}
