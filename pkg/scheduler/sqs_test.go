package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/notify/mocks"
	"github.com/chris/cash-agent-exchange/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestScheduleSettlement(t *testing.T) {
	agreement := &models.Agreement{
		ExchangeCode:    "BTC-7QK2ZD",
		InitiatorUserId: "+256700000001",
		AssignedAgentId: "agent-1",
		AssetType:       models.BTC,
		Direction:       models.SELL,
		AssetAmount:     500000,
	}

	t.Run("Release Goes To Agent On Sell", func(t *testing.T) {
		client := mocks.NewSQSAPI(t)
		s := NewSQSScheduler(client, "https://sqs/settlements.fifo")

		client.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
			var req SettlementRequest
			if err := json.Unmarshal([]byte(*in.MessageBody), &req); err != nil {
				return false
			}
			return req.Kind == storage.SettlementRelease && req.To == "agent-1" &&
				*in.MessageDeduplicationId == "BTC-7QK2ZD:release"
		})).Return(&sqs.SendMessageOutput{}, nil)

		assert.NoError(t, s.ScheduleSettlement(context.Background(), ReleaseFor(agreement)))
	})

	t.Run("Refund Goes To Initiator On Sell", func(t *testing.T) {
		req := RefundFor(agreement)

		assert.Equal(t, "+256700000001", req.To)
		assert.Equal(t, storage.SettlementRefund, req.Kind)
	})

	t.Run("SendMessage Fails", func(t *testing.T) {
		client := mocks.NewSQSAPI(t)
		s := NewSQSScheduler(client, "q")

		client.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		err := s.ScheduleSettlement(context.Background(), ReleaseFor(agreement))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send message to SQS")
	})
}
