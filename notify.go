package main

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"hireline/models"
)

const resendEndpoint = "https://api.resend.com/emails"

var notifyTmpl = template.Must(template.New("notify").Parse(`<h2>New Application</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Message:</strong></p>
<p>{{.Message}}</p>
{{if .VideoURL}}<p><strong>Video Application:</strong> <a href="{{.VideoURL}}">View Video</a></p>
{{end}}<hr>
<p>Log in to the dashboard to review this application.</p>
`))

type notifyData struct {
	Name     string
	Email    string
	Phone    string
	Message  template.HTML
	VideoURL string
}

// Notifier sends a best-effort email to the recruiting inbox for each new
// application. Sends run on their own worker goroutine, decoupled from the
// submission request: a failed or dropped notification never affects the
// submission outcome, and nothing is retried.
type Notifier struct {
	client   *resty.Client
	endpoint string
	apiKey   string
	from     string
	to       string
	log      zerolog.Logger
	queue    chan models.Application
}

func NewNotifier(cfg *Config, log zerolog.Logger) *Notifier {
	logger := log.With().Str("component", "notifier").Logger()
	n := &Notifier{
		client:   resty.New().SetTimeout(10 * time.Second),
		endpoint: resendEndpoint,
		apiKey:   strings.TrimSpace(cfg.ResendAPIKey),
		from:     cfg.NotifyFrom,
		to:       cfg.NotifyTo,
		log:      logger,
		queue:    make(chan models.Application, 64),
	}
	if n.apiKey == "" {
		logger.Warn().Msg("RESEND_API_KEY not set; email notifications are disabled")
	}
	return n
}

// Start launches the worker. The worker lives for the whole process; there is
// no drain on shutdown, matching the best-effort contract.
func (n *Notifier) Start() {
	if n.apiKey == "" {
		return
	}
	go func() {
		for app := range n.queue {
			n.send(app)
		}
	}()
}

// Enqueue hands an application to the worker without blocking the caller.
// When notifications are disabled or the queue is full the application is
// dropped with a log line.
func (n *Notifier) Enqueue(app models.Application) {
	if n.apiKey == "" {
		return
	}
	select {
	case n.queue <- app:
	default:
		n.log.Warn().Str("application_id", app.ID.String()).Msg("notification queue full; dropping")
	}
}

func (n *Notifier) send(app models.Application) {
	data := notifyData{
		Name:    app.Name,
		Email:   app.Email,
		Phone:   app.Phone,
		Message: template.HTML(strings.ReplaceAll(template.HTMLEscapeString(app.Message), "\n", "<br>")),
	}
	if app.VideoURL != nil {
		data.VideoURL = *app.VideoURL
	}
	var body bytes.Buffer
	if err := notifyTmpl.Execute(&body, data); err != nil {
		n.log.Error().Err(err).Str("application_id", app.ID.String()).Msg("render notification")
		return
	}
	resp, err := n.client.R().
		SetHeader("Authorization", "Bearer "+n.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"from":    n.from,
			"to":      []string{n.to},
			"subject": "New Application from " + app.Name,
			"html":    body.String(),
		}).
		Post(n.endpoint)
	if err != nil {
		n.log.Error().Err(err).Str("application_id", app.ID.String()).Msg("send notification")
		return
	}
	if !resp.IsSuccess() {
		n.log.Error().Int("status", resp.StatusCode()).Str("application_id", app.ID.String()).
			Str("body", resp.String()).Msg("notification rejected")
		return
	}
	n.log.Info().Str("application_id", app.ID.String()).Msg("notification sent")
}
