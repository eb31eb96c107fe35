package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type captureSender struct {
	sent []*gomail.Message
	err  error
}

func (s *captureSender) DialAndSend(m ...*gomail.Message) error {
	s.sent = append(s.sent, m...)
	return s.err
}

func TestNotifyGuardianSendsMail(t *testing.T) {
	sender := &captureSender{}
	n := NewMailNotifierWithSender(sender, "panti@pantiwk.com", zap.NewNop())

	err := n.NotifyGuardian(context.Background(), Alert{
		To: "budi@example.com", GuardianName: "Budi", ResidentName: "Siti", ResidentCode: "R-004",
		Condition: "Kurang Baik", RecordedAt: "2024-06-15T08:00:00", Notes: "Demam ringan",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"budi@example.com"}, sender.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"Kabar kondisi Siti"}, sender.sent[0].GetHeader("Subject"))
}

func TestNotifyGuardianWrapsSendError(t *testing.T) {
	n := NewMailNotifierWithSender(&captureSender{err: errors.New("connection refused")}, "panti@pantiwk.com", zap.NewNop())
	err := n.NotifyGuardian(context.Background(), Alert{To: "budi@example.com"})
	assert.ErrorContains(t, err, "connection refused")
}

type stuckSender struct{ release chan struct{} }

func (s *stuckSender) DialAndSend(...*gomail.Message) error {
	<-s.release
	return nil
}

func TestNotifyGuardianStopsAtDeadline(t *testing.T) {
	sender := &stuckSender{release: make(chan struct{})}
	defer close(sender.release)
	n := NewMailNotifierWithSender(sender, "panti@pantiwk.com", zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := n.NotifyGuardian(ctx, Alert{To: "budi@example.com"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBody(t *testing.T) {
	body := Body(Alert{GuardianName: "Budi", ResidentName: "Siti", ResidentCode: "R-004", Condition: "Kurang Baik", Notes: "Demam ringan"})
	assert.Contains(t, body, "Yth. Budi")
	assert.Contains(t, body, "Siti (R-004)")
	assert.Contains(t, body, "Catatan petugas: Demam ringan")
	assert.NotContains(t, body, "Kegiatan:")
}
