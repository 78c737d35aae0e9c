package handler_test

import (
	"testing"

	"agrosoft/internal/handler"
	"agrosoft/internal/validator"

	"github.com/stretchr/testify/assert"
)

// 理由なしのキャンセルも受け付ける（motivo_cancelacionは任意フィールド）。
func TestOrderCancelRequest_ReasonIsOptional(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Validate(&handler.OrderCancelRequest{}))
	assert.NoError(t, v.Validate(&handler.OrderCancelRequest{Reason: "cambio de planes"}))
}

func TestOrderStatusRequest_StatusRequired(t *testing.T) {
	v := validator.New()

	assert.Error(t, v.Validate(&handler.OrderStatusRequest{}))
	assert.NoError(t, v.Validate(&handler.OrderStatusRequest{StatusID: 2}))
}
