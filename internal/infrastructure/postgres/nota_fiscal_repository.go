package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestaolivre/fiscal-api/internal/domain"
	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
	"github.com/gestaolivre/fiscal-api/internal/domain/repository"
)

var _ repository.NotaFiscalRepository = (*NotaFiscalRepo)(nil)

// NotaFiscalRepo implementação de NotaFiscalRepository (usável com pool ou tx).
//
// A carga tributária de cada item vai na coluna JSONB tributacao; os totais da
// nota ficam em colunas NUMERIC próprias para permitir agregação em SQL.
type NotaFiscalRepo struct {
	q Querier
}

// NewNotaFiscalRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewNotaFiscalRepository(q Querier) *NotaFiscalRepo {
	return &NotaFiscalRepo{q: q}
}

const notaColumns = `id, company_id, numero, serie, chave_acesso, customer_id, customer_nome,
	customer_documento, customer_endereco, status, emissao,
	valor_produtos, valor_desconto, valor_icms, valor_icms_st, valor_ipi, valor_pis,
	valor_cofins, valor_frete, valor_seguro, outras_despesas, valor_total_nota,
	created_at, updated_at`

// Create persiste o cabeçalho e os itens da nota.
func (r *NotaFiscalRepo) Create(nota *entity.NotaFiscal) error {
	query := `
		INSERT INTO notas_fiscais (` + notaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`
	t := nota.Totais
	_, err := r.q.Exec(context.Background(), query,
		nota.ID, nota.CompanyID, nota.Numero, nota.Serie, nota.ChaveAcesso,
		nota.CustomerID, nota.CustomerNome, nota.CustomerDocumento, nota.CustomerEndereco,
		nota.Status, nota.Emissao,
		t.ValorProdutos, t.ValorDesconto, t.ValorICMS, t.ValorICMSST, t.ValorIPI, t.ValorPIS,
		t.ValorCOFINS, t.ValorFrete, t.ValorSeguro, t.OutrasDespesas, t.ValorTotalNota,
		nota.CreatedAt, nota.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert nota: %w", err)
	}
	for i, item := range nota.Itens {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO nota_itens (id, nota_id, product_id, descricao, quantidade, valor_unitario, valor_total, tributacao, posicao)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			item.ID, nota.ID, nullIfEmpty(item.ProductID), item.Descricao,
			item.Quantidade, item.ValorUnitario, item.ValorTotal, item.Tributacao, i,
		)
		if err != nil {
			return fmt.Errorf("insert item da nota: %w", err)
		}
	}
	return nil
}

// GetByID obtém a nota com seus itens.
func (r *NotaFiscalRepo) GetByID(id string) (*entity.NotaFiscal, error) {
	query := `SELECT ` + notaColumns + ` FROM notas_fiscais WHERE id = $1`
	nota, err := r.scanNota(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nota: %w", err)
	}
	if err := r.loadItens(nota); err != nil {
		return nil, err
	}
	return nota, nil
}

// ListByCompany lista as notas da empresa, mais recente primeiro, sem itens.
func (r *NotaFiscalRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.NotaFiscal, error) {
	query := `SELECT ` + notaColumns + `
		FROM notas_fiscais WHERE company_id = $1 ORDER BY emissao DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notas: %w", err)
	}
	defer rows.Close()
	return r.collectNotas(rows)
}

// ListByCompanyAll devolve todas as notas da empresa, sem itens (dashboard).
func (r *NotaFiscalRepo) ListByCompanyAll(companyID string) ([]*entity.NotaFiscal, error) {
	query := `SELECT ` + notaColumns + ` FROM notas_fiscais WHERE company_id = $1`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list notas: %w", err)
	}
	defer rows.Close()
	return r.collectNotas(rows)
}

// UpdateStatus muda o status da nota (ex.: cancelamento).
func (r *NotaFiscalRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE notas_fiscais SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update status da nota: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextNumero devolve o próximo número sequencial da série. O upsert no
// contador segura o lock da linha até o commit, então duas emissões
// concorrentes da mesma série nunca recebem o mesmo número.
func (r *NotaFiscalRepo) NextNumero(companyID, serie string) (int64, error) {
	var numero int64
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO nota_series (company_id, serie, ultimo_numero)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, serie)
		DO UPDATE SET ultimo_numero = nota_series.ultimo_numero + 1
		RETURNING ultimo_numero`,
		companyID, serie,
	).Scan(&numero)
	if err != nil {
		return 0, fmt.Errorf("próximo número da série: %w", err)
	}
	return numero, nil
}

func (r *NotaFiscalRepo) scanNota(row pgx.Row) (*entity.NotaFiscal, error) {
	var n entity.NotaFiscal
	var customerEndereco *string
	err := row.Scan(
		&n.ID, &n.CompanyID, &n.Numero, &n.Serie, &n.ChaveAcesso,
		&n.CustomerID, &n.CustomerNome, &n.CustomerDocumento, &customerEndereco,
		&n.Status, &n.Emissao,
		&n.Totais.ValorProdutos, &n.Totais.ValorDesconto, &n.Totais.ValorICMS,
		&n.Totais.ValorICMSST, &n.Totais.ValorIPI, &n.Totais.ValorPIS,
		&n.Totais.ValorCOFINS, &n.Totais.ValorFrete, &n.Totais.ValorSeguro,
		&n.Totais.OutrasDespesas, &n.Totais.ValorTotalNota,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if customerEndereco != nil {
		n.CustomerEndereco = *customerEndereco
	}
	return &n, nil
}

func (r *NotaFiscalRepo) collectNotas(rows pgx.Rows) ([]*entity.NotaFiscal, error) {
	var list []*entity.NotaFiscal
	for rows.Next() {
		nota, err := r.scanNota(rows)
		if err != nil {
			return nil, fmt.Errorf("scan nota: %w", err)
		}
		list = append(list, nota)
	}
	return list, rows.Err()
}

func (r *NotaFiscalRepo) loadItens(nota *entity.NotaFiscal) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, product_id, descricao, quantidade, valor_unitario, valor_total, tributacao
		FROM nota_itens WHERE nota_id = $1 ORDER BY posicao`,
		nota.ID,
	)
	if err != nil {
		return fmt.Errorf("list itens da nota: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.ItemNota
		var productID *string
		if err := rows.Scan(&item.ID, &productID, &item.Descricao,
			&item.Quantidade, &item.ValorUnitario, &item.ValorTotal, &item.Tributacao); err != nil {
			return fmt.Errorf("scan item da nota: %w", err)
		}
		if productID != nil {
			item.ProductID = *productID
		}
		item.NotaID = nota.ID
		nota.Itens = append(nota.Itens, item)
	}
	return rows.Err()
}

// nullIfEmpty mapeia string vazia para NULL (FKs opcionais).
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
