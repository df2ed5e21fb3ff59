package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/veloshop/storefront/internal/adapter/handler/pb"
	"github.com/veloshop/storefront/internal/core/domain"
	"github.com/veloshop/storefront/internal/core/service"
)

type GRPCHandler struct {
	pb.UnimplementedStockServiceServer
	stock *service.StockService
}

func NewGRPCHandler(stock *service.StockService) *GRPCHandler {
	return &GRPCHandler{stock: stock}
}

func (h *GRPCHandler) GetStock(ctx context.Context, req *pb.GetStockRequest) (*pb.StockResponse, error) {
	stock, err := h.stock.GetStock(ctx, req.GetProductId())
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return nil, status.Error(codes.NotFound, "product not found")
		}
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &pb.StockResponse{Stock: int32(stock)}, nil
}

func (h *GRPCHandler) AdjustStock(ctx context.Context, req *pb.AdjustStockRequest) (*pb.StockResponse, error) {
	stock, err := h.stock.AdjustStock(ctx, req.GetProductId(), int(req.GetQuantity()), domain.StockOperation(req.GetOperation()))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOperation):
			return nil, status.Error(codes.InvalidArgument, "invalid operation")
		case errors.Is(err, service.ErrProductNotFound):
			return nil, status.Error(codes.NotFound, "product not found")
		}
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &pb.StockResponse{Stock: int32(stock)}, nil
}
