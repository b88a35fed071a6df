// Package storage persists rendered preview documents through the preview
// store collaborator service and hands back durable public URLs.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/golang/glog"
	"golang.org/x/net/context/ctxhttp"

	"github.com/adcontextprotocol/creative-agent/metrics"
)

// Client stores rendered preview documents. Implementations are responsible
// for logging any relevant errors to the app logs.
type Client interface {
	// PutHTML stores the given entries and returns their public URLs. The
	// returned slice always has the same number of elements as the entries
	// argument; if an entry could not be saved its element is an empty
	// string and a matching error is appended to the error slice.
	PutHTML(ctx context.Context, entries []Entry) ([]string, []error)
}

// Entry is one preview document to persist. Key is deterministic per
// (preview, variant) pair, so client-side retries overwrite rather than
// duplicate.
type Entry struct {
	Key        string
	Body       string
	TTLSeconds int64
}

// PreviewKey builds the canonical object key for a preview variant.
func PreviewKey(previewID, variantName string) string {
	variant := strings.ToLower(strings.ReplaceAll(variantName, " ", "-"))
	return fmt.Sprintf("previews/%s/%s.html", previewID, variant)
}

// NewClient returns a Client backed by the preview store HTTP service.
// publicBaseURL is the address objects are readable from (the bucket's
// public host), putURL the service's write endpoint.
func NewClient(httpClient *http.Client, putURL, publicBaseURL string, me metrics.Engine) Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 65 * time.Second,
			},
		}
	}
	return &clientImpl{
		httpClient:    httpClient,
		putURL:        putURL,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		metrics:       me,
	}
}

type clientImpl struct {
	httpClient    *http.Client
	putURL        string
	publicBaseURL string
	metrics       metrics.Engine
}

func (c *clientImpl) PutHTML(ctx context.Context, entries []Entry) (urls []string, errs []error) {
	errs = make([]error, 0, 1)
	if len(entries) < 1 {
		return nil, errs
	}

	urlsToReturn := make([]string, len(entries))

	postBody, err := encodeEntries(entries)
	if err != nil {
		glog.Errorf("Error creating JSON for preview store: %v", err)
		errs = append(errs, fmt.Errorf("error creating JSON for preview store: %v", err))
		return urlsToReturn, errs
	}

	httpReq, err := http.NewRequest("POST", c.putURL, bytes.NewReader(postBody))
	if err != nil {
		glog.Errorf("Error creating POST request to preview store: %v", err)
		errs = append(errs, fmt.Errorf("error creating POST request to preview store: %v", err))
		return urlsToReturn, errs
	}
	httpReq.Header.Add("Content-Type", "application/json;charset=utf-8")
	httpReq.Header.Add("Accept", "application/json")

	startTime := time.Now()
	resp, err := ctxhttp.Do(ctx, c.httpClient, httpReq)
	elapsedTime := time.Since(startTime)
	if err != nil {
		c.metrics.RecordStorageRequestTime(false, elapsedTime)
		friendlyErr := fmt.Errorf("error sending the request to the preview store: %v; Duration=%v", err, elapsedTime)
		glog.Error(friendlyErr)
		errs = append(errs, friendlyErr)
		return urlsToReturn, errs
	}
	defer resp.Body.Close()

	responseBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordStorageRequestTime(false, elapsedTime)
		glog.Errorf("Preview store call to %s returned %d: %s", c.putURL, resp.StatusCode, responseBody)
		errs = append(errs, fmt.Errorf("preview store call to %s returned %d: %s", c.putURL, resp.StatusCode, responseBody))
		return urlsToReturn, errs
	}
	c.metrics.RecordStorageRequestTime(true, elapsedTime)

	currentIndex := 0
	processResponse := func(keyObj []byte, _ jsonparser.ValueType, _ int, err error) {
		if currentIndex >= len(urlsToReturn) {
			if currentIndex == len(urlsToReturn) {
				glog.Errorf("Preview store returned more responses than entries put. Response body was: %s", string(responseBody))
				errs = append(errs, fmt.Errorf("preview store returned more responses than the %d entries put", len(entries)))
			}
			currentIndex++
			return
		}
		if key, valueType, _, err := jsonparser.Get(keyObj, "key"); err != nil {
			glog.Errorf("Preview store returned a bad value at index %d. Error was: %v. Response body was: %s", currentIndex, err, string(responseBody))
			errs = append(errs, fmt.Errorf("preview store returned a bad value at index %d: %v", currentIndex, err))
		} else if valueType != jsonparser.String {
			glog.Errorf("Preview store returned a %v at index %d in: %v", valueType, currentIndex, string(responseBody))
			errs = append(errs, fmt.Errorf("preview store returned a %v at index %d", valueType, currentIndex))
		} else {
			parsed, err := jsonparser.ParseString(key)
			if err != nil {
				glog.Errorf("Preview store response index %d could not be parsed as string: %v", currentIndex, err)
				errs = append(errs, fmt.Errorf("preview store response index %d could not be parsed as string: %v", currentIndex, err))
			} else {
				urlsToReturn[currentIndex] = c.publicBaseURL + "/" + parsed
			}
		}
		currentIndex++
	}

	if _, err := jsonparser.ArrayEach(responseBody, processResponse, "responses"); err != nil {
		glog.Errorf("Error interpreting preview store response: %v\nResponse was: %s", err, string(responseBody))
		errs = append(errs, fmt.Errorf("error interpreting preview store response: %v", err))
		return urlsToReturn, errs
	}

	return urlsToReturn, errs
}

func encodeEntries(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"puts":[`)
	for i := range entries {
		if err := encodeEntryToBuffer(entries[i], i != 0, &buf); err != nil {
			return nil, err
		}
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

func encodeEntryToBuffer(entry Entry, leadingComma bool, buffer *bytes.Buffer) error {
	body, err := json.Marshal(entry.Body)
	if err != nil {
		return err
	}

	if leadingComma {
		buffer.WriteByte(',')
	}

	buffer.WriteString(`{"key":`)
	key, err := json.Marshal(entry.Key)
	if err != nil {
		return err
	}
	buffer.Write(key)
	buffer.WriteString(`,"content_type":"text/html"`)
	if entry.TTLSeconds > 0 {
		buffer.WriteString(`,"ttlseconds":`)
		buffer.WriteString(strconv.FormatInt(entry.TTLSeconds, 10))
	}
	buffer.WriteString(`,"value":`)
	buffer.Write(body)
	buffer.WriteByte('}')
	return nil
}
