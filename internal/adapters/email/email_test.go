package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmarketplace/internal/domain"
)

type templateData struct {
	RecipientName string
	Amount        string
	Payload       any
}

func TestTemplateRenderer_Render(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	t.Run("refund decided", func(t *testing.T) {
		subject, html, text, err := r.Render(string(domain.NotificationRefundDecided), templateData{
			RecipientName: "Ana <Ruiz>",
			Amount:        "12.50 EUR",
			Payload:       domain.RefundDecidedPayload{RefundRequestID: "rr-1", Decision: domain.RefundApproved, Comment: "policy"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Your refund request was approved", subject)
		assert.Contains(t, html, "Ana &lt;Ruiz&gt;")
		assert.Contains(t, text, "Ana <Ruiz>")
		assert.Contains(t, text, "12.50 EUR")
	})

	t.Run("every notification kind has templates", func(t *testing.T) {
		payloads := map[domain.NotificationKind]any{
			domain.NotificationRefundRequested: domain.RefundRequestedPayload{EventName: "Gophercon"},
			domain.NotificationRefundDecided:   domain.RefundDecidedPayload{},
			domain.NotificationEventCancelled:  domain.EventCancelledPayload{EventName: "Gophercon", ParticipantCount: 3},
		}
		for kind, payload := range payloads {
			subject, html, text, err := r.Render(string(kind), templateData{Payload: payload})
			require.NoError(t, err, kind)
			assert.NotEmpty(t, subject, kind)
			assert.NotEmpty(t, html, kind)
			assert.NotEmpty(t, text, kind)
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		_, _, _, err := r.Render("welcome", templateData{})
		require.Error(t, err)
	})
}

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := &fakeSES{}
	m := &sesMailer{client: client, fromAddress: "no-reply@example.com", fromName: "Tickets", logger: logger}

	require.NoError(t, m.Send(context.Background(), "ana@example.com", "Hello", "<p>hi</p>", ""))
	assert.Equal(t, "Tickets <no-reply@example.com>", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"ana@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "<p>hi</p>", aws.ToString(client.input.Message.Body.Html.Data))
	assert.Nil(t, client.input.Message.Body.Text)

	client.err = errors.New("throttled")
	require.ErrorIs(t, m.Send(context.Background(), "ana@example.com", "Hello", "", "hi"), client.err)
}

func TestNewMailer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	m, err := NewMailer(MailerConfig{Provider: "noop"}, logger)
	require.NoError(t, err)
	require.NoError(t, m.Send(context.Background(), "a@example.com", "s", "h", "t"))

	_, err = NewMailer(MailerConfig{Provider: "ses"}, logger)
	require.Error(t, err)

	m, err = NewMailer(MailerConfig{Provider: "ses", FromAddress: "no-reply@example.com", SES: SESConfig{Region: "eu-west-1"}}, logger)
	require.NoError(t, err)
	assert.IsType(t, &sesMailer{}, m)
}
