package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/client"
	"github.com/jhoicas/estoque-api/pkg/jwt"
)

const defaultURL = "http://localhost:8080"

type env func(string) string

type command struct {
	usage string
	run   func(ctx context.Context, c *client.Client, args []string, out io.Writer) error
}

var commands = map[string]command{
	"produtos":     {"lista productos y resumen", cmdProducts},
	"produto-add":  {"--name N [--sku S] [--qty Q] [--cost C]", cmdProductAdd},
	"produto-edit": {"--index I --name N --qty Q", cmdProductEdit},
	"movs":         {"[--q TEXTO] lista movimientos", cmdMovements},
	"mov-add":      {"--product N --type Entrada|Saída --qty Q [--cost C] [--desc D]", cmdMovementAdd},
	"mov-del":      {"--index I (índice de la secuencia completa)", cmdMovementDelete},
	"resumo":       {"agregados del estoque", cmdSummary},
	"export-csv":   {"[--out estoque.csv]", cmdExportCSV},
	"export-pdf":   {"[--out estoque.pdf] [--q TEXTO]", cmdExportPDF},
	"login":        {"--password P [--operator O] obtiene un token de la API", cmdLogin},
}

func run(ctx context.Context, args []string, out io.Writer, getenv env) error {
	global := pflag.NewFlagSet("estoquectl", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(out)
	baseURL := global.String("url", firstNonEmpty(getenv("ESTOQUE_URL"), defaultURL), "URL base de la API (ESTOQUE_URL)")
	token := global.String("token", getenv("ESTOQUE_TOKEN"), "token Bearer del operador (ESTOQUE_TOKEN)")
	if err := global.Parse(args); err != nil {
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		printUsage(out)
		return errors.New("falta el comando")
	}
	name, cmdArgs := rest[0], rest[1:]

	switch name {
	case "token":
		return cmdToken(cmdArgs, out, getenv)
	case "hash-password":
		return cmdHashPassword(cmdArgs, out)
	}
	cmd, ok := commands[name]
	if !ok {
		printUsage(out)
		return fmt.Errorf("comando desconocido %q", name)
	}
	return cmd.run(ctx, client.New(*baseURL, *token), cmdArgs, out)
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "uso: estoquectl [--url URL] [--token TOKEN] <comando> [flags]")
	names := make([]string, 0, len(commands)+1)
	for n := range commands {
		names = append(names, n)
	}
	local := map[string]string{
		"token":         "--secret S [--operator O] [--issuer I] [--exp MIN] emite un token local",
		"hash-password": "--password P genera OPERATOR_PASSWORD_HASH",
	}
	for n := range local {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		usage := local[n]
		if c, ok := commands[n]; ok {
			usage = c.usage
		}
		fmt.Fprintf(out, "  %-13s %s\n", n, usage)
	}
}

func newFlags(name string, out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

// ── Productos ────────────────────────────────────────────────────────────────

func cmdProducts(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	if err := newFlags("produtos", out).Parse(args); err != nil {
		return err
	}
	list, err := c.ListProducts(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPRODUTO\tSKU\tQTD\tCUSTO")
	for _, p := range list.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", p.Index, p.Name, p.SKU, p.Qty, p.UnitCost.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printSummary(out, list.Summary)
	return nil
}

func cmdProductAdd(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := newFlags("produto-add", out)
	name := fs.String("name", "", "nombre")
	sku := fs.String("sku", "", "SKU (opcional)")
	qty := fs.String("qty", "0", "cantidad inicial")
	cost := fs.String("cost", "0", "costo unitario")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return errors.New("--name es obligatorio")
	}
	p, err := c.CreateProduct(ctx, dto.CreateProductRequest{Name: *name, SKU: *sku, Qty: *qty, UnitCost: *cost})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "produto #%d %s\n", p.Index, p.Label)
	return nil
}

func cmdProductEdit(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := newFlags("produto-edit", out)
	index := fs.Int("index", -1, "índice del producto")
	name := fs.String("name", "", "nuevo nombre")
	qty := fs.String("qty", "0", "nueva cantidad")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !fs.Changed("index") || !fs.Changed("name") || !fs.Changed("qty") {
		return errors.New("--index, --name y --qty son obligatorios")
	}
	p, err := c.UpdateProduct(ctx, *index, dto.UpdateProductRequest{Name: *name, Qty: *qty})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "produto #%d %s\n", p.Index, p.Label)
	return nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

func cmdMovements(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := newFlags("movs", out)
	q := fs.String("q", "", "filtro por producto o descripción")
	if err := fs.Parse(args); err != nil {
		return err
	}
	list, err := c.ListMovements(ctx, *q)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDATA\tPRODUTO\tTIPO\tQTD\tFINAL\tCUSTO UNIT.\tCUSTO TOTAL\tDESCRIÇÃO")
	for _, m := range list.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			m.Index, m.DatetimeLabel, m.Product, m.Type, m.Qty, m.FinalQty,
			m.UnitCostLabel, m.TotalLabel, m.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d de %d movimentações\n", len(list.Items), list.Total)
	return nil
}

func cmdMovementAdd(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := newFlags("mov-add", out)
	product := fs.String("product", "", "nombre del producto")
	typ := fs.String("type", "Entrada", "Entrada | Saída")
	qty := fs.String("qty", "0", "cantidad")
	cost := fs.String("cost", "0", "costo unitario")
	desc := fs.String("desc", "", "descripción")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *product == "" {
		return errors.New("--product es obligatorio")
	}
	m, err := c.CreateMovement(ctx, dto.CreateMovementRequest{
		Product: *product, Type: *typ, Qty: *qty, UnitCost: *cost, Description: *desc,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s de %d em %s: saldo %d, total %s\n", m.Type, m.Qty, m.Product, m.FinalQty, m.TotalLabel)
	return nil
}

func cmdMovementDelete(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := newFlags("mov-del", out)
	index := fs.Int("index", -1, "índice del movimiento")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !fs.Changed("index") {
		return errors.New("--index es obligatorio")
	}
	m, err := c.DeleteMovement(ctx, *index)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "removida %s de %d em %s (%s)\n", m.Type, m.Qty, m.Product, m.DatetimeLabel)
	return nil
}

// ── Resumen y exportaciones ──────────────────────────────────────────────────

func cmdSummary(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	if err := newFlags("resumo", out).Parse(args); err != nil {
		return err
	}
	s, err := c.Summary(ctx)
	if err != nil {
		return err
	}
	printSummary(out, s)
	return nil
}

func printSummary(out io.Writer, s dto.Summary) {
	fmt.Fprintf(out, "produtos: %d  movimentações: %d  estoque total: %d un\n",
		s.ProductCount, s.MovementCount, s.TotalQty)
}

func cmdExportCSV(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := newFlags("export-csv", out)
	path := fs.String("out", "estoque.csv", "archivo destino (- = stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	body, err := c.ExportCSV(ctx)
	if err != nil {
		return err
	}
	return writeOutput(out, *path, body)
}

func cmdExportPDF(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := newFlags("export-pdf", out)
	path := fs.String("out", "estoque.pdf", "archivo destino (- = stdout)")
	q := fs.String("q", "", "filtro de movimientos")
	if err := fs.Parse(args); err != nil {
		return err
	}
	body, err := c.ExportPDF(ctx, *q)
	if err != nil {
		return err
	}
	return writeOutput(out, *path, body)
}

func writeOutput(out io.Writer, path string, body []byte) error {
	if path == "-" {
		_, err := out.Write(body)
		return err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (%d bytes)\n", path, len(body))
	return nil
}

// ── Token ────────────────────────────────────────────────────────────────────

func cmdToken(args []string, out io.Writer, getenv env) error {
	fs := newFlags("token", out)
	secret := fs.String("secret", getenv("JWT_SECRET"), "secreto HS256 (JWT_SECRET)")
	operator := fs.String("operator", jwt.RoleOperator, "subject del token")
	issuer := fs.String("issuer", firstNonEmpty(getenv("JWT_ISSUER"), "estoque-api"), "emisor (JWT_ISSUER)")
	exp := fs.Int("exp", 60*12, "minutos de validez")
	if err := fs.Parse(args); err != nil {
		return err
	}
	tok, err := jwt.Generate(*secret, *operator, *issuer, *exp)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, tok)
	return nil
}

func cmdHashPassword(args []string, out io.Writer) error {
	fs := newFlags("hash-password", out)
	password := fs.String("password", "", "contraseña del operador")
	if err := fs.Parse(args); err != nil {
		return err
	}
	hash, err := auth.HashPassword(*password)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, hash)
	return nil
}

func cmdLogin(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := newFlags("login", out)
	password := fs.String("password", "", "contraseña del operador")
	operator := fs.String("operator", "", "subject del token")
	if err := fs.Parse(args); err != nil {
		return err
	}
	res, err := c.Login(ctx, *operator, *password)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, res.Token)
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
