package crm

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/intellicrm-core/internal/domain/entity"
)

// Datos semilla instalados en la primera ejecución sobre un almacén vacío.
// Cada función devuelve un slice nuevo para que el bootstrap nunca comparta
// memoria con las colecciones vivas.

func seedTime(day int, hour int) time.Time {
	return time.Date(2024, time.June, day, hour, 0, 0, 0, time.UTC)
}

func seedCustomers() []entity.Customer {
	return []entity.Customer{
		{
			ID:                 "1",
			Avatar:             "https://i.pravatar.cc/150?u=1",
			Name:               "Sharma Traders",
			Contact:            "+91 98200 11001",
			AlternateContact:   "+91 98200 11002",
			State:              "Maharashtra",
			District:           "Pune",
			Tier:               entity.TierGold,
			SalesThisMonth:     decimal.NewFromInt(125000),
			Avg6MoSales:        decimal.NewFromInt(98000),
			OutstandingBalance: decimal.NewFromInt(45000),
			DaysSinceLastOrder: 4,
			LastUpdated:        seedTime(10, 9),
		},
		{
			ID:                 "2",
			Avatar:             "https://i.pravatar.cc/150?u=2",
			Name:               "Krishna Agencies",
			Contact:            "+91 99450 22010",
			State:              "Karnataka",
			District:           "Mysuru",
			Tier:               entity.TierSilver,
			SalesThisMonth:     decimal.NewFromInt(62000),
			Avg6MoSales:        decimal.NewFromInt(71000),
			OutstandingBalance: decimal.NewFromInt(12300),
			DaysSinceLastOrder: 11,
			LastUpdated:        seedTime(8, 15),
		},
		{
			ID:                 "3",
			Avatar:             "https://i.pravatar.cc/150?u=3",
			Name:               "Patel Distributors",
			Contact:            "+91 98790 33015",
			State:              "Gujarat",
			District:           "Surat",
			Tier:               entity.TierPlatinum,
			SalesThisMonth:     decimal.NewFromInt(240000),
			Avg6MoSales:        decimal.NewFromInt(215000),
			OutstandingBalance: decimal.Zero,
			DaysSinceLastOrder: 2,
			LastUpdated:        seedTime(12, 11),
		},
	}
}

func seedSales() []entity.Sale {
	return []entity.Sale{
		{ID: "s1", CustomerID: "1", Amount: decimal.NewFromInt(45000), Date: seedTime(3, 10)},
		{ID: "s2", CustomerID: "1", Amount: decimal.NewFromInt(80000), Date: seedTime(9, 12)},
		{ID: "s3", CustomerID: "2", Amount: decimal.NewFromInt(62000), Date: seedTime(1, 9)},
		{ID: "s4", CustomerID: "3", Amount: decimal.NewFromInt(240000), Date: seedTime(11, 16)},
	}
}

func seedRemarks() []entity.Remark {
	neutral := entity.SentimentNeutral
	positive := entity.SentimentPositive
	return []entity.Remark{
		{
			ID:         "r1",
			CustomerID: "1",
			Remark:     "Pidió catálogo actualizado de la línea monzón.",
			Timestamp:  seedTime(9, 13),
			User:       authorLabel,
			Sentiment:  &neutral,
		},
		{
			ID:         "r2",
			CustomerID: "3",
			Remark:     "Muy conforme con los tiempos de entrega del último pedido.",
			Timestamp:  seedTime(11, 17),
			User:       authorLabel,
			Sentiment:  &positive,
		},
	}
}

func seedTasks() []entity.Task {
	return []entity.Task{
		{
			ID:         "t1",
			CustomerID: "2",
			Title:      "Llamar para renovar pedido trimestral",
			DueDate:    seedTime(20, 10),
		},
		{
			ID:      "t2",
			Title:   "Preparar informe mensual de cobranza",
			DueDate: seedTime(28, 18),
		},
	}
}

func seedGoals() []entity.Goal {
	return []entity.Goal{
		{
			ID:            "g1",
			CustomerID:    "1",
			Title:         "Meta de ventas del semestre",
			TargetAmount:  decimal.NewFromInt(500000),
			CurrentAmount: decimal.Zero,
			Deadline:      time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
			Status:        entity.GoalInProgress,
		},
	}
}

func seedMilestones() []entity.Milestone {
	return []entity.Milestone{
		{ID: "m1", GoalID: "g1", Title: "Primer pedido del semestre", Completed: true},
		{ID: "m2", GoalID: "g1", Title: "Alcanzar 50% de la meta"},
	}
}
