package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santofavo/encomendas/internal/anthropic"
	"github.com/santofavo/encomendas/internal/catalog"
)

// DraftToolName 唯一声明的抽取工具
const DraftToolName = "update_draft"

const draftToolDescription = "Atualiza campos do rascunho do pedido com as informações extraídas da conversa. Chame sempre que identificar novos dados."

// draftTool 构造 update_draft 工具声明，字段与草稿线上名称一致
func draftTool(cat *catalog.Catalog) anthropic.Tool {
	str := func(description string) map[string]interface{} {
		return map[string]interface{}{"type": "string", "description": description}
	}
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"atendente":       str("Um de: " + strings.Join(cat.Handlers(), ", ")),
			"cliente":         str("Nome completo do cliente"),
			"telefone":        str("Telefone com DDD"),
			"endereco":        str("Endereço completo (rua, número, complemento, bairro, cidade, estado, CEP)"),
			"dataEntrega":     str("Data de entrega no formato YYYY-MM-DD"),
			"entrega":         str("Um de: " + strings.Join(cat.DeliveryModes(), ", ")),
			"metodoPagamento": str("Método de pagamento se já foi pago"),
			"taxaEntrega":     str("Taxa de entrega em reais (só se aplicável)"),
			"revenda":         map[string]interface{}{"type": "boolean", "description": "true se for pedido de revenda"},
			"observacao":      str("Observações, incluindo horário de entrega no formato 'Horário: Xh'"),
			"products": map[string]interface{}{
				"type":                 "object",
				"description":          "Produtos com quantidade. Chaves devem ser nomes exatos: " + strings.Join(cat.DisplayNames(), ", "),
				"additionalProperties": map[string]interface{}{"type": "number"},
			},
		},
	}
	raw, _ := json.Marshal(schema)
	return anthropic.Tool{
		Name:        DraftToolName,
		Description: draftToolDescription,
		InputSchema: raw,
	}
}

// buildSystemPrompt 系统指令：领域字段、枚举集合、商品目录与映射提示
func buildSystemPrompt(business string, cat *catalog.Catalog, paymentMethods []string, today string) string {
	if len(paymentMethods) == 0 {
		paymentMethods = cat.PaymentMethods()
	}
	handlers := strings.Join(cat.Handlers(), ", ")
	modes := strings.Join(cat.DeliveryModes(), ", ")

	var sb strings.Builder
	fmt.Fprintf(&sb, "Você é um assistente de encomendas da %s, uma confeitaria artesanal. Seu trabalho é coletar informações de pedidos de forma rápida e natural.\n\n", business)
	fmt.Fprintf(&sb, "HOJE É %s. Use essa data como referência para interpretar expressões como \"amanhã\", \"sábado\", etc.\n\n", today)
	sb.WriteString("ESTILO: Seja conciso e direto. Respostas curtas (1-3 linhas). Tom informal mas profissional. Em português brasileiro.\n\n")
	sb.WriteString("CAMPOS OBRIGATÓRIOS (colete todos estes):\n")
	fmt.Fprintf(&sb, "- atendente (quem registrou): %s\n", handlers)
	sb.WriteString("- cliente (nome do cliente)\n")
	sb.WriteString("- dataEntrega (data de entrega, formato YYYY-MM-DD)\n")
	fmt.Fprintf(&sb, "- entrega (tipo): %s\n", modes)
	sb.WriteString("- metodoPagamento (se já foi pago); se não foi pago, deixe em branco\n\n")
	sb.WriteString("CAMPOS OPCIONAIS (colete se aparecerem):\n")
	sb.WriteString("- telefone, endereco, observacao, taxaEntrega, revenda, products\n\n")
	sb.WriteString("PRODUTOS VÁLIDOS:\n")
	sb.WriteString(strings.Join(cat.DisplayNames(), ", "))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "MÉTODOS DE PAGAMENTO VÁLIDOS: %s\n\n", strings.Join(paymentMethods, ", "))
	sb.WriteString("REGRAS IMPORTANTES:\n")
	fmt.Fprintf(&sb, "1. Quando o usuário colar texto formatado (ex: mensagem do WhatsApp com dados do cliente), extraia tudo que conseguir de uma vez e use a tool %s imediatamente.\n", DraftToolName)
	sb.WriteString("2. Horário de entrega → inclua na observacao como \"Horário: 14h\"\n")
	sb.WriteString("3. Para produtos: mapeie nomes naturais para os nomes exatos. Ex: \"bolo pão de mel pequeno\" → \"Bolo PDM P\"; \"pão de mel caramelo\" → \"🟥 PDM CAR\"\n")
	sb.WriteString("4. \"Bolo P\" geralmente = 15cm. \"Bolo G\" = grande. \"Fatia\" = fatia individual.\n")
	fmt.Fprintf(&sb, "5. Para data de entrega: calcule a data exata baseada em \"hoje\" (%s). Ex: \"sábado que vem\" → próximo sábado.\n", today)
	fmt.Fprintf(&sb, "6. Após cada mensagem, use %s para salvar qualquer dado novo identificado, depois responda ao usuário pedindo apenas o que ainda falta.\n", DraftToolName)
	sb.WriteString("7. Quando tiver todos os campos obrigatórios, diga \"Tudo certo! ✅\" e pare de perguntar.\n")
	sb.WriteString("8. NÃO invente dados. Se não tiver certeza, pergunte.\n")
	sb.WriteString("9. Pergunte de forma agrupada; tente não fazer mais de 2 perguntas por vez.\n\n")
	sb.WriteString("FLUXO IDEAL:\n")
	sb.WriteString("1. Usuário cola dados → você extrai tudo (usa tool) → pergunta só o que falta\n")
	sb.WriteString("2. Se tiver atendente + cliente + entrega + data + pagamento → diga que está completo")
	return sb.String()
}
