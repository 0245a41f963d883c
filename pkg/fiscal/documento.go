package fiscal

import (
	"errors"
	"unicode"
)

// Erros de validação de documento. Mensagens curtas, pensadas para exibição
// direta ao usuário no formulário de emissão.
var (
	ErrCPFTamanho  = errors.New("CPF deve ter 11 dígitos")
	ErrCPFInvalido = errors.New("CPF inválido")

	ErrCNPJTamanho  = errors.New("CNPJ deve ter 14 dígitos")
	ErrCNPJInvalido = errors.New("CNPJ inválido")
)

// Pesos do segundo bloco do cálculo do dígito verificador do CNPJ.
// O primeiro dígito usa os pesos a partir do índice 1 (sequência de 12),
// o segundo usa a sequência completa (13).
var cnpjWeights = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

// ValidateCPF valida o CPF (com ou sem pontuação) pelo algoritmo módulo 11
// da Receita Federal: soma ponderada dos 9 primeiros dígitos com pesos 10..2
// para o primeiro DV e dos 10 primeiros com pesos 11..2 para o segundo.
// Sequências de dígitos repetidos ("111.111.111-11") são rejeitadas mesmo
// tendo dígitos verificadores aritmeticamente corretos.
func ValidateCPF(doc string) error {
	digits := extractDigits(doc)
	if len(digits) != 11 {
		return ErrCPFTamanho
	}
	if allSameDigit(digits) {
		return ErrCPFInvalido
	}

	dv1 := mod11Digit(digits[:9], func(i int) int { return 10 - i })
	if dv1 != int(digits[9]-'0') {
		return ErrCPFInvalido
	}
	dv2 := mod11Digit(digits[:10], func(i int) int { return 11 - i })
	if dv2 != int(digits[10]-'0') {
		return ErrCPFInvalido
	}
	return nil
}

// ValidateCNPJ valida o CNPJ (com ou sem pontuação) pelo algoritmo módulo 11:
// pesos 5,4,3,2,9,8,7,6,5,4,3,2 para o primeiro DV e 6,5,4,3,2,9,8,7,6,5,4,3,2
// para o segundo. Sequências repetidas são rejeitadas.
func ValidateCNPJ(doc string) error {
	digits := extractDigits(doc)
	if len(digits) != 14 {
		return ErrCNPJTamanho
	}
	if allSameDigit(digits) {
		return ErrCNPJInvalido
	}

	dv1 := mod11Digit(digits[:12], func(i int) int { return cnpjWeights[i+1] })
	if dv1 != int(digits[12]-'0') {
		return ErrCNPJInvalido
	}
	dv2 := mod11Digit(digits[:13], func(i int) int { return cnpjWeights[i] })
	if dv2 != int(digits[13]-'0') {
		return ErrCNPJInvalido
	}
	return nil
}

// ValidateDocumento decide pelo tamanho se o documento é CPF (11 dígitos) ou
// CNPJ (14 dígitos) e aplica o validador correspondente. Qualquer outro
// tamanho é rejeitado como CPF (mensagem de tamanho).
func ValidateDocumento(doc string) error {
	digits := extractDigits(doc)
	switch len(digits) {
	case 11:
		return ValidateCPF(doc)
	case 14:
		return ValidateCNPJ(doc)
	default:
		return ErrCPFTamanho
	}
}

// mod11Digit calcula um dígito verificador módulo 11: soma ponderada,
// resto < 2 produz 0, caso contrário 11 - resto.
func mod11Digit(digits []byte, weight func(i int) int) int {
	var sum int
	for i, d := range digits {
		sum += int(d-'0') * weight(i)
	}
	rest := 11 - (sum % 11)
	if rest >= 10 {
		return 0
	}
	return rest
}

func allSameDigit(digits []byte) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
