package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"room-billing/internal/config"
	"room-billing/internal/domain"
	"room-billing/internal/gateway"
	"room-billing/internal/httpapi"
	"room-billing/internal/logger"
	"room-billing/internal/receipt"
	"room-billing/internal/render"
	"room-billing/internal/usecase"
)

func main() {
	// Define command-line flags
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file (optional)")
	serve := flag.Bool("serve", false, "Serve the view over HTTP instead of printing it once")
	filter := flag.String("filter", "all", "View filter: all, unpaid, prepaid or paid")
	exportPath := flag.String("export", "", "Write the filtered view to this XLSX file")
	historyID := flag.String("history", "", "Print the payment history of this patient id")
	payPatient := flag.String("pay-patient", "", "Record a payment for this patient id")
	payAmount := flag.Float64("pay-amount", 0, "Payment amount")
	payName := flag.String("pay-name", "", "Patient name printed on the receipt")
	payStatus := flag.String("pay-status", "paid", "Payment status")
	payMethod := flag.String("pay-method", "cash", "Payment method")
	payNotes := flag.String("pay-notes", "", "Payment notes")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	view, err := wire(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to wire billing view", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := view.Dispatch(ctx, usecase.SetFilter{Filter: domain.Filter(*filter)}); err != nil {
		zapLogger.Fatal("Invalid filter", zap.Error(err))
	}

	if *historyID != "" {
		history, err := view.PaymentHistory(ctx, domain.PatientID(*historyID))
		if err != nil {
			zapLogger.Fatal("Failed to load payment history", zap.Error(err))
		}
		printJSON(history)
		return
	}

	if *payPatient != "" {
		out, err := view.Dispatch(ctx, usecase.SubmitPayment{Request: domain.PaymentRequest{
			PatientID:   domain.PatientID(*payPatient),
			PatientName: *payName,
			Amount:      *payAmount,
			Status:      *payStatus,
			Method:      *payMethod,
			Notes:       *payNotes,
		}})
		if err != nil {
			zapLogger.Fatal("Payment failed", zap.Error(err))
		}
		printJSON(out)
		return
	}

	// A failed initial load still serves the error banner.
	if _, err := view.Dispatch(ctx, usecase.Reload{}); err != nil {
		zapLogger.Error("Initial load failed", zap.Error(err))
		if !*serve {
			os.Exit(1)
		}
	}

	if *serve {
		server := httpapi.NewServer(httpapi.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}, view, zapLogger)
		if err := server.Start(ctx); err != nil {
			zapLogger.Fatal("Server error", zap.Error(err))
		}
		return
	}

	snap := view.Snapshot()
	if *exportPath != "" {
		data, err := render.ExportXLSX(snap)
		if err != nil {
			zapLogger.Fatal("Export failed", zap.Error(err))
		}
		if err := os.WriteFile(*exportPath, data, 0644); err != nil {
			zapLogger.Fatal("Failed to write export", zap.String("path", *exportPath), zap.Error(err))
		}
		zapLogger.Info("View exported", zap.String("path", *exportPath), zap.Int("rows", len(snap.Rows)))
		return
	}
	printJSON(snap)
}

// wire builds the billing view from configuration.
func wire(cfg *config.Config, zapLogger *zap.Logger) (*usecase.BillingView, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	client := gateway.NewClient(gateway.Config{
		BaseURL:       cfg.API.BaseURL,
		Token:         cfg.API.Token,
		Timeout:       cfg.API.Timeout,
		BalancesLimit: cfg.API.BalancesLimit,
		Location:      loc,
		Endpoints: gateway.Endpoints{
			RoomPayments:   cfg.API.Endpoints.RoomPayments,
			Registrations:  cfg.API.Endpoints.Registrations,
			Balances:       cfg.API.Endpoints.Balances,
			UserProfile:    cfg.API.Endpoints.UserProfile,
			Patient:        cfg.API.Endpoints.Patient,
			PaymentHistory: cfg.API.Endpoints.PaymentHistory,
		},
	}, zapLogger.Named("gateway"))

	printer, err := receipt.NewPopupPrinter(cfg.Receipt.PopupURL, cfg.API.Token, loc, zapLogger.Named("receipt"))
	if err != nil {
		return nil, err
	}

	return usecase.NewBillingView(client, printer, zapLogger.Named("view"), usecase.ViewOptions{
		Calculator:          usecase.NewAccrualCalculator(loc, nil),
		Reconciler:          usecase.NewReconciler(cfg.Billing.DischargedRoomLabel),
		ProcessedByFallback: cfg.Billing.ProcessedByFallback,
	}), nil
}

func printJSON(v any) {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
	fmt.Println(string(output))
}
