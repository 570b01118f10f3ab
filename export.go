package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"id", "name", "category", "price", "vendor", "sku", "rating"}

func exportRow(product Product) []string {
	return []string{
		product.ID,
		product.Name,
		product.Category,
		strconv.FormatFloat(product.Price, 'f', 2, 64),
		product.Vendor,
		product.SKU,
		strconv.FormatFloat(product.Rating, 'f', 2, 64),
	}
}

func resolveExportDir(cfg *uiConfig) string {
	if cfg != nil && cfg.ExportDir != "" {
		return cfg.ExportDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// writeProductsCSV exports the merged view as it is displayed.
func writeProductsCSV(dir string, products []Product) (string, error) {
	if len(products) == 0 {
		return "", errors.New("no rows to export")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("products-%s.csv", time.Now().UTC().Format("20060102-150405"))
	path := filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(exportHeaders); err != nil {
		return "", err
	}
	for _, product := range products {
		if err := writer.Write(exportRow(product)); err != nil {
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return path, nil
}

// writeProductsXLSX exports the merged view as a spreadsheet.
func writeProductsXLSX(dir string, products []Product) (string, error) {
	if len(products) == 0 {
		return "", errors.New("no rows to export")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("products-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	path := filepath.Join(dir, name)

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Products"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", err
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return "", err
		}
	}
	for rowIdx, product := range products {
		values := []any{
			product.ID,
			product.Name,
			product.Category,
			product.Price,
			product.Vendor,
			product.SKU,
			product.Rating,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return "", err
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}
