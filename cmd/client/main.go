package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	pub "gitlab.com/dirk.krummacker/contact-console/pkg/model"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:          "client",
	Short:        "Command line client for the contact console",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the contact console service")
}

// Usage examples on the command line:
// > go run . list --status=new
// > go run . view 1
// > go run . info set --phone="+855 23 999 000" && go run . info commit
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// apiClient sends JSON requests to the service.
type apiClient struct {
	base string
	http *http.Client
}

func newClient() *apiClient {
	return &apiClient{
		base: strings.TrimRight(serverURL, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// do sends the request and decodes the response into out, if out is not nil. Responses with an
// error status are turned into an error carrying the message of the service.
func (c *apiClient) do(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}
	request, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	response, err := c.http.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	content, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}
	if response.StatusCode >= http.StatusBadRequest {
		var message pub.Message
		if json.Unmarshal(content, &message) == nil && message.Message != "" {
			return fmt.Errorf("%s %s: %s (%d)", method, path, message.Message, response.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, response.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(content, out)
}
