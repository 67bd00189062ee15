//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	libraryclient "github.com/Apurer/go-gin-design-library/internal/clients/http/library"
	pacttest "github.com/Apurer/go-gin-design-library/test/pact"
)

func TestDesignPortalContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	example := pacttest.ExampleDesignPayload(pacttest.ExistingDesignID)
	designMatcher := matchers.Map{
		"id":            matchers.Like(example["id"]),
		"imageUrl":      matchers.Like(example["imageUrl"]),
		"finalPrice":    matchers.Like(example["finalPrice"]),
		"category":      matchers.Like(example["category"]),
		"isShortlisted": matchers.Like(example["isShortlisted"]),
		"meeting": matchers.Map{
			"id":         matchers.Like(pacttest.MeetingID),
			"vendorName": matchers.Like(pacttest.ExampleVendor),
			"location":   matchers.Like(pacttest.ExampleLocation),
		},
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	noStore := matchers.S("no-store, no-cache, must-revalidate, max-age=0")
	cacheBust := matchers.Regex("1700000000000000000", "\\d+")

	pact.AddInteraction().
		Given(pacttest.StateDesignsExist).
		UponReceiving("a cache-busting request for the design library").
		WithRequest("GET", "/api/designs", func(b *pactconsumer.V2RequestBuilder) {
			b.Query(libraryclient.CacheBustParam, cacheBust)
			b.Header("Cache-Control", matchers.S("no-cache"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.Header("Cache-Control", noStore)
			b.JSONBody(matchers.Map{
				"success": matchers.Like(true),
				"data":    matchers.EachLike(designMatcher, 1),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateDesignsExist).
		UponReceiving("a request to delete an existing design").
		WithRequest("DELETE", fmt.Sprintf("/api/designs/%d", pacttest.ExistingDesignID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"success": matchers.Like(true)})
		})

	pact.AddInteraction().
		Given(pacttest.StateDesignMissing).
		UponReceiving("a request to delete a missing design").
		WithRequest("DELETE", fmt.Sprintf("/api/designs/%d", pacttest.MissingDesignID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateDesignsExist).
		UponReceiving("a request for dashboard stats").
		WithRequest("GET", "/api/stats").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"success": matchers.Like(true),
				"data": matchers.Map{
					"totalMeetings": matchers.Like(1),
					"totalDesigns":  matchers.Like(2),
				},
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		host := config.Host
		if host == "" {
			host = "localhost"
		}
		client, err := libraryclient.NewClient(
			fmt.Sprintf("http://%s:%d", host, config.Port),
			libraryclient.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
		)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		list, err := client.ListDesigns(ctx)
		if err != nil {
			return fmt.Errorf("list designs: %w", err)
		}
		if len(list) == 0 || list[0].Entity.ID == 0 {
			return fmt.Errorf("expected designs, got %d", len(list))
		}
		if err := client.DeleteDesign(ctx, pacttest.ExistingDesignID); err != nil {
			return fmt.Errorf("delete design: %w", err)
		}
		var serverErr *libraryclient.ServerError
		if err := client.DeleteDesign(ctx, pacttest.MissingDesignID); !errors.As(err, &serverErr) || serverErr.Status != http.StatusNotFound {
			return fmt.Errorf("expected 404 for design %d, got %v", pacttest.MissingDesignID, err)
		}

		stats, err := client.Stats(ctx)
		if err != nil {
			return fmt.Errorf("stats: %w", err)
		}
		if stats.TotalDesigns == 0 {
			return fmt.Errorf("expected design count, got %+v", stats)
		}
		return nil
	})
	require.NoError(t, err)
}
