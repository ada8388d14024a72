package handlers

import (
	"time"

	"beadvault/internal/catalog"
	"beadvault/internal/models"
)

type ItemRequest struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	Count     int    `json:"count"`
	Threshold int    `json:"threshold"`
}

type ItemResponse struct {
	Id        int    `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Count     int    `json:"count"`
	Threshold int    `json:"threshold"`
	Category  string `json:"category"`
	LowStock  bool   `json:"low_stock"`
}

func newItemResponse(it models.Item) ItemResponse {
	return ItemResponse{
		Id:        it.ID,
		Name:      it.Name,
		Color:     it.Color,
		Count:     it.Count,
		Threshold: catalog.EffectiveThreshold(it),
		Category:  catalog.Classify(it.Name),
		LowStock:  catalog.IsLowStock(it),
	}
}

type ConsumeRequest struct {
	Amount int `json:"amount"`
}

type RecolorRequest struct {
	Color string `json:"color"`
}

type LedgerEntryResponse struct {
	Id        int       `json:"id"`
	ItemName  string    `json:"item_name"`
	Action    string    `json:"action"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type UnlockRequest struct {
	Passphrase string `json:"passphrase"`
}

type UnlockResult struct {
	Token string `json:"token"`
}
