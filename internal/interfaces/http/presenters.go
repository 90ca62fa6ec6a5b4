package http

import (
	"github.com/jhoicas/paintshop-api/internal/application/dto"
	"github.com/jhoicas/paintshop-api/internal/application/inventory"
	"github.com/jhoicas/paintshop-api/internal/application/picture"
	"github.com/jhoicas/paintshop-api/internal/domain/entity"
	domaininv "github.com/jhoicas/paintshop-api/internal/domain/inventory"
)

const negativeStockWarning = "el saldo quedó negativo: revisar inventario físico"

func toStockResponse(v inventory.StockView) dto.StockResponse {
	return dto.StockResponse{
		MaterialID:  v.Material.ID,
		Quantity:    v.Quantity,
		MinLevel:    v.MinLevel,
		IsLow:       v.IsLow,
		IsNegative:  v.IsNegative,
		LastUpdated: v.LastUpdated,
	}
}

func toStockItems(views []inventory.StockView) []dto.StockItemResponse {
	items := make([]dto.StockItemResponse, 0, len(views))
	for _, v := range views {
		items = append(items, dto.StockItemResponse{
			MaterialID:   v.Material.ID,
			MaterialName: v.Material.Name,
			Unit:         v.Material.Unit,
			Category:     string(v.Material.Category),
			Active:       v.Material.Active,
			Quantity:     v.Quantity,
			MinLevel:     v.MinLevel,
			IsLow:        v.IsLow,
			IsNegative:   v.IsNegative,
			LastUpdated:  v.LastUpdated,
		})
	}
	return items
}

func toMovementResponse(m *entity.MaterialMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		MaterialID:    m.MaterialID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		Reason:        m.Reason,
		ReferenceID:   m.ReferenceID,
		ReferenceType: m.ReferenceType,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

func toMovementList(list []*entity.MaterialMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out
}

func toMovementResult(res *inventory.MovementResult) dto.MovementResultResponse {
	updated := res.Stock.LastUpdated
	out := dto.MovementResultResponse{
		Stock: dto.StockResponse{
			MaterialID:  res.Stock.MaterialID,
			Quantity:    res.Stock.Quantity,
			MinLevel:    res.Stock.MinLevel,
			IsLow:       domaininv.IsLowStock(res.Stock.Quantity, res.Stock.MinLevel),
			IsNegative:  res.IsNegative,
			LastUpdated: &updated,
		},
		Movement:   toMovementResponse(res.Movement),
		IsNegative: res.IsNegative,
	}
	if res.IsNegative {
		out.Warning = negativeStockWarning
	}
	return out
}

func toPurchaseResponse(p *entity.MaterialPurchase) dto.PurchaseResponse {
	return dto.PurchaseResponse{
		ID:           p.ID,
		MaterialID:   p.MaterialID,
		Quantity:     p.Quantity,
		UnitPrice:    p.UnitPrice,
		TotalPrice:   p.TotalPrice,
		Supplier:     p.Supplier,
		PurchaseDate: p.PurchaseDate,
		Notes:        p.Notes,
	}
}

func toSizeResponse(s *entity.PictureSize) dto.PictureSizeResponse {
	return dto.PictureSizeResponse{ID: s.ID, Name: s.Name, Width: s.Width, Height: s.Height}
}

func toLines(lines []*entity.PictureMaterial) []dto.BOMLineResponse {
	out := make([]dto.BOMLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.BOMLineResponse{ID: l.ID, MaterialID: l.MaterialID, Quantity: l.Quantity})
	}
	return out
}

func toPictureResponse(d *picture.PictureDetail) dto.PictureResponse {
	p := d.Picture
	return dto.PictureResponse{
		ID:            p.ID,
		Title:         p.Title,
		Type:          p.Type,
		PictureSizeID: p.PictureSizeID,
		Price:         p.Price,
		CostPrice:     p.CostPrice,
		WorkHours:     p.WorkHours,
		Materials:     toLines(d.Lines),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toCostResponse(b *picture.CostBreakdown) dto.PictureCostResponse {
	lines := make([]dto.CostLineDTO, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, dto.CostLineDTO{
			MaterialID:       l.MaterialID,
			Quantity:         l.Quantity,
			AverageUnitPrice: l.UnitPrice,
			Cost:             l.Cost,
		})
	}
	return dto.PictureCostResponse{
		PictureID:    b.PictureID,
		Lines:        lines,
		MaterialCost: b.MaterialCost,
		LaborCost:    b.LaborCost,
		Total:        b.Total,
	}
}
