package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/cropbudget/internal/config"
	"github.com/mamadbah2/cropbudget/internal/domain/models"
)

type fakeReporter struct {
	owner string
	year  int
	err   error
}

func (f *fakeReporter) WeeklyReport(_ context.Context, owner string, year int) (string, error) {
	f.owner, f.year = owner, year
	return "Net $1.00", f.err
}

type fakeNotifier struct {
	sent []models.Notification
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, n models.Notification) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, n)
	return "wamid.1", nil
}

type fakeSweeper struct{ maxAge time.Duration }

func (f *fakeSweeper) Sweep(maxAge time.Duration) int {
	f.maxAge = maxAge
	return 2
}

func testConfig() config.Config {
	return config.Config{
		Season:    config.SeasonConfig{ImportSessionTTL: 30 * time.Minute},
		WhatsApp:  config.WhatsAppConfig{AccessToken: "tok", RecipientID: "1555"},
		Reporting: config.ReportingConfig{CronSchedule: "0 20 * * 5", Timezone: "UTC", OwnerID: "u1", Year: 2025},
	}
}

func TestSendWeeklyReport(t *testing.T) {
	reporter := &fakeReporter{}
	notifier := &fakeNotifier{}
	s, err := NewScheduler(testConfig(), reporter, notifier, nil)
	require.NoError(t, err)

	require.NoError(t, s.SendWeeklyReport(context.Background()))
	assert.Equal(t, "u1", reporter.owner)
	assert.Equal(t, 2025, reporter.year)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "1555", notifier.sent[0].To)
	assert.Equal(t, "Net $1.00", notifier.sent[0].Message)

	notifier.err = errors.New("rate limited")
	assert.ErrorContains(t, s.SendWeeklyReport(context.Background()), "rate limited")

	reporter.err = errors.New("store down")
	assert.ErrorContains(t, s.SendWeeklyReport(context.Background()), "store down")
}

func TestSendWeeklyReportDisabled(t *testing.T) {
	s, err := NewScheduler(testConfig(), &fakeReporter{}, nil, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, s.SendWeeklyReport(context.Background()), ErrReportDisabled)

	cfg := testConfig()
	cfg.Reporting.OwnerID = ""
	s, err = NewScheduler(cfg, &fakeReporter{}, &fakeNotifier{}, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, s.SendWeeklyReport(context.Background()), ErrReportDisabled)
}

func TestSweepAndStart(t *testing.T) {
	sw := &fakeSweeper{}
	s, err := NewScheduler(testConfig(), &fakeReporter{}, nil, nil, sw)
	require.NoError(t, err)

	s.sweep()
	assert.Equal(t, 30*time.Minute, sw.maxAge)

	require.NoError(t, s.Start())
	s.Stop()
}

func TestSchedulerRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.Timezone = "Mars/Olympus"
	_, err := NewScheduler(cfg, &fakeReporter{}, nil, nil)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Reporting.CronSchedule = "whenever"
	s, err := NewScheduler(cfg, &fakeReporter{}, nil, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}
