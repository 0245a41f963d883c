package fiscal

import (
	"fmt"
	"time"
)

// ModeloNFe modelo do documento fiscal na chave de acesso (55 = NF-e).
const ModeloNFe = "55"

// ErrChaveAcesso chave de acesso malformada ou com DV incorreto.
var ErrChaveAcesso = fmt.Errorf("chave de acesso inválida")

// BuildChaveAcesso monta a chave de acesso de 44 dígitos da NF-e:
//
//	cUF(2) AAMM(4) CNPJ(14) modelo(2) série(3) número(9) tpEmis(1) cNF(8) DV(1)
//
// O dígito verificador é módulo 11 com pesos 2..9 aplicados da direita para a
// esquerda sobre os 43 primeiros dígitos.
func BuildChaveAcesso(codigoUF string, emissao time.Time, cnpj, serie, numero, codigoNumerico string) (string, error) {
	cnpjDigits := extractDigits(cnpj)
	if len(cnpjDigits) != 14 {
		return "", ErrCNPJTamanho
	}
	if len(codigoUF) != 2 {
		return "", fmt.Errorf("código da UF deve ter 2 dígitos")
	}

	base := codigoUF +
		emissao.Format("0601") + // AAMM
		string(cnpjDigits) +
		ModeloNFe +
		zeroPad(serie, 3) +
		zeroPad(numero, 9) +
		"1" + // tpEmis: emissão normal
		zeroPad(codigoNumerico, 8)
	if len(base) != 43 {
		return "", ErrChaveAcesso
	}
	for _, r := range base {
		if r < '0' || r > '9' {
			return "", ErrChaveAcesso
		}
	}
	return base + string(rune('0'+digitoChave(base))), nil
}

// ValidateChaveAcesso verifica tamanho, dígitos e DV de uma chave completa.
func ValidateChaveAcesso(chave string) error {
	if len(chave) != 44 {
		return ErrChaveAcesso
	}
	for _, r := range chave {
		if r < '0' || r > '9' {
			return ErrChaveAcesso
		}
	}
	if byte('0'+digitoChave(chave[:43])) != chave[43] {
		return ErrChaveAcesso
	}
	return nil
}

// zeroPad completa s com zeros à esquerda até n dígitos.
func zeroPad(s string, n int) string {
	for len(s) < n {
		s = "0" + s
	}
	return s
}

// digitoChave calcula o DV módulo 11 dos 43 primeiros dígitos: pesos 2..9 em
// ciclo, da direita para a esquerda; resto 0 ou 1 produz DV 0.
func digitoChave(base string) int {
	peso := 2
	var soma int
	for i := len(base) - 1; i >= 0; i-- {
		soma += int(base[i]-'0') * peso
		peso++
		if peso > 9 {
			peso = 2
		}
	}
	resto := soma % 11
	if resto == 0 || resto == 1 {
		return 0
	}
	return 11 - resto
}
