package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/santofavo/encomendas/internal/client"
	"github.com/santofavo/encomendas/internal/config"
	"github.com/santofavo/encomendas/internal/dashboard"
	"github.com/santofavo/encomendas/internal/dates"
	"github.com/santofavo/encomendas/internal/draft"
	"github.com/santofavo/encomendas/internal/logger"
)

const helpText = `Comandos:
  /enviar      cria o pedido quando o rascunho estiver pronto
  /rascunho    mostra o rascunho atual
  /novo        descarta o rascunho e recomeça
  /pedidos     lista os pedidos dos próximos 7 dias
  /sair        encerra`

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	var baseURL, token string
	flag.StringVar(&baseURL, "api", cfg.Dashboard.APIBaseURL, "API 地址")
	flag.StringVar(&token, "token", cfg.Dashboard.Token, "员工令牌")
	flag.Parse()

	api, err := client.New(client.Config{
		BaseURL: baseURL,
		Token:   token,
		Timeout: time.Duration(cfg.Dashboard.TimeoutMS) * time.Millisecond,
	}, nil)
	if err != nil {
		stdLog.Fatalf("客户端配置无效: %v", err)
	}
	loc, err := cfg.Catalog.Location()
	if err != nil {
		stdLog.Fatalf("时区无效: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := dashboard.NewChatSession(api)
	session.LoadPaymentMethods(ctx)
	today := dates.Today(loc, time.Now())
	end, _ := dates.AddDays(today, 6)
	board := dashboard.NewBoard(api, dashboard.BoardOptions{
		Start:    today,
		End:      end,
		Interval: time.Duration(cfg.Dashboard.PollIntervalSeconds) * time.Second,
	})
	go board.Run(ctx)

	fmt.Println("🤖", dashboard.InitialGreeting)
	fmt.Println(helpText)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch line {
		case "/sair":
			return
		case "/ajuda":
			fmt.Println(helpText)
		case "/novo":
			session.Reset()
			fmt.Println("🤖", dashboard.InitialGreeting)
		case "/rascunho":
			printDraft(session.Draft())
		case "/enviar":
			pageID, err := session.Submit(ctx)
			switch {
			case err == nil:
				fmt.Printf("✅ Pedido criado (%s)\n", pageID)
				_ = board.Refresh(ctx)
				fmt.Println("🤖", dashboard.InitialGreeting)
			case errors.Is(err, dashboard.ErrDraftNotReady):
				fmt.Printf("Faltam: %s\n", strings.Join(draft.Missing(session.Draft()), ", "))
			default:
				fmt.Printf("Erro ao criar pedido: %v\n", err)
			}
		case "/pedidos":
			if fetched, err := board.LastFetched(); err != nil {
				fmt.Printf("Erro ao carregar pedidos: %v\n", err)
				if fetched.IsZero() {
					continue
				}
			}
			printBoard(board)
		default:
			reply, err := session.Send(ctx, line)
			if err != nil {
				logger.Warnw("chat_turn_failed", "error", err)
				fmt.Println("🤖", dashboard.RetryMessage)
				continue
			}
			if reply.Message != "" {
				fmt.Println("🤖", reply.Message)
			}
			if reply.Ready {
				printDraft(session.Draft())
				fmt.Println("Digite /enviar para criar o pedido.")
			}
		}
	}
}

func printDraft(d draft.Draft) {
	if d.IsEmpty() {
		fmt.Println("(rascunho vazio)")
		return
	}
	fields := []struct {
		label string
		value *string
	}{
		{"Cliente", d.CustomerName},
		{"Atendente", d.Handler},
		{"Entrega", d.DeliveryDate},
		{"Produção", d.ProductionDate},
		{"Tipo", d.DeliveryMode},
		{"Pagamento", d.PaymentMethod},
		{"Taxa", d.DeliveryFee},
		{"Telefone", d.Phone},
		{"Endereço", d.Address},
		{"Obs", d.Note},
	}
	for _, field := range fields {
		if value := draft.Value(field.value); value != "" {
			fmt.Printf("  %-10s %s\n", field.label, value)
		}
	}
	if d.IsResale != nil && *d.IsResale {
		fmt.Printf("  %-10s sim\n", "Revenda")
	}
	for _, name := range d.ItemNames() {
		if qty := d.Items[name]; qty > 0 {
			fmt.Printf("  %-10s %s x%d\n", "", strings.TrimSpace(name), qty)
		}
	}
}

func printBoard(board *dashboard.Board) {
	groups := board.Grouped()
	if len(groups) == 0 {
		fmt.Println("(nenhum pedido)")
		return
	}
	for _, group := range groups {
		fmt.Printf("── %s ──\n", group.Date)
		for _, order := range group.Orders {
			fmt.Printf("  %s %-20s %-14s %s\n", order.Icon, order.Customer, order.DeliveryMode, order.Status)
		}
	}
	fmt.Println("Totais:")
	for _, total := range board.Summary(nil) {
		fmt.Printf("  %-20s %d\n", total.Name, total.Qty)
	}
}
