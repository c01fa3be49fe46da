package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jwebster45206/shop-engine/pkg/catalog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	validIDRegex       = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
	validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}

func isValidCatalogFilename(name string) bool {
	return validFilenameRegex.MatchString(name)
}

// validateFile strictly decodes a catalog and runs content checks on top of
// catalog.Validate.
func validateFile(filename string) (*catalog.Catalog, error) {
	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return nil, fmt.Errorf("catalog file must have .json extension: %s", baseName)
	}
	if !isValidCatalogFilename(strings.TrimSuffix(baseName, ".json")) {
		return nil, fmt.Errorf("catalog filename '%s' must be lowercase snake_case (e.g., items.json, rare_items.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	c, err := catalog.Decode(data, true)
	if err != nil {
		return nil, fmt.Errorf("file %s failed strict JSON decoding: %w", filename, err)
	}

	var problems []string
	if err := c.Validate(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			problems = append(problems, "  - "+line)
		}
	}
	for i, e := range c.Entries {
		if e == nil || e.ID == "" {
			continue
		}
		if !isValidID(e.ID) {
			problems = append(problems, fmt.Sprintf("  - entry %d: id '%s' should be lowercase snake_case", i, e.ID))
		}
		if e.Purchasable && e.SellPrice > e.BuyPrice {
			problems = append(problems, fmt.Sprintf("  - entry %s: sell price %d exceeds buy price %d", e.ID, e.SellPrice, e.BuyPrice))
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(problems, "\n"))
	}
	return c, nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderCatalog draws the catalog as a table, optionally filtered to the
// entries one character may use.
func renderCatalog(c *catalog.Catalog, player string) (string, error) {
	var filter *catalog.UserType
	if player != "" {
		u, err := catalog.ParseUserType(player)
		if err != nil {
			return "", err
		}
		filter = &u
	}

	title := cases.Title(language.English)
	rows := make([][]string, 0, c.Len())
	for _, e := range c.Entries {
		if filter != nil && !e.Allows(*filter) {
			continue
		}
		users := make([]string, len(e.AllowedUsers))
		for i, u := range e.AllowedUsers {
			users[i] = title.String(u.String())
		}
		rows = append(rows, []string{
			e.ID,
			e.Name,
			e.PriceLabel(),
			"$" + strconv.Itoa(e.SellPrice),
			strconv.Itoa(e.Stock),
			strings.Join(users, ", "),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("ID", "NAME", "PRICE", "SELLS FOR", "STOCK", "USERS").
		Rows(rows...)

	heading := fmt.Sprintf("%s (%s, %d entries)", c.Name, c.Kind, len(rows))
	return heading + "\n" + t.String(), nil
}
