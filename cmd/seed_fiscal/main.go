// seed_fiscal gera um script SQL para popular a tabela de códigos NCM a
// partir do CSV oficial da Nomenclatura Comum do Mercosul (separador ';',
// codificação ISO-8859-1).
//
// Uso: go run ./cmd/seed_fiscal [caminho/ncm.csv]
// Por padrão procura ncm.csv no diretório atual.
// Escreve: internal/infrastructure/postgres/migrations/010_seed_ncm.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	csvPath := "ncm.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// O CSV oficial vem em ISO-8859-1; converte para UTF-8 na leitura.
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ler CSV: %v\n", err)
		os.Exit(1)
	}

	// Só interessam as posições completas de 8 dígitos (capítulos e posições
	// intermediárias têm menos dígitos e não entram em nota).
	ncms := make(map[string]string)
	for _, rec := range records {
		if len(rec) < 2 {
			continue
		}
		codigo := strings.ReplaceAll(strings.TrimSpace(rec[0]), ".", "")
		descricao := strings.TrimSpace(rec[1])
		if len(codigo) != 8 || descricao == "" {
			continue
		}
		ncms[codigo] = descricao
	}
	if len(ncms) == 0 {
		fmt.Fprintln(os.Stderr, "Nenhum NCM de 8 dígitos encontrado no CSV")
		os.Exit(1)
	}

	var codigos []string
	for c := range ncms {
		codigos = append(codigos, c)
	}
	sort.Strings(codigos)

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "010_seed_ncm.sql")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Criar diretório: %v\n", err)
		os.Exit(1)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Criar arquivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Nomenclatura Comum do Mercosul (posições de 8 dígitos)\n")
	out.WriteString("-- Gerado a partir do CSV oficial da tabela NCM\n\n")
	out.WriteString("INSERT INTO ncm_codigos (codigo, descricao) VALUES\n")
	for i, c := range codigos {
		desc := escapeSQL(ncms[c])
		if i < len(codigos)-1 {
			fmt.Fprintf(out, "  ('%s', '%s'),\n", c, desc)
		} else {
			fmt.Fprintf(out, "  ('%s', '%s')\n", c, desc)
		}
	}
	out.WriteString("ON CONFLICT (codigo) DO UPDATE SET descricao = EXCLUDED.descricao;\n")

	fmt.Printf("Gerado %s: %d códigos NCM\n", outPath, len(codigos))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
