package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

const defaultBrand = "Stripe"

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string, timeout time.Duration) *TestClient {
	return &TestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the agent")
	testType := flag.String("test", "all", "Test type: all, health, ui, validation, generate, custom")
	brand := flag.String("brand", "", "Brand name or URL (for custom test)")
	timeout := flag.Duration("timeout", 120*time.Second, "HTTP client timeout")
	flag.Parse()

	client := NewTestClient(*baseURL, *timeout)

	printHeader("Brand Intel Agent - Smoke Tests")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	ok := true
	switch *testType {
	case "all":
		client.runAllTests()
	case "health":
		ok = client.testHealthCheck()
	case "ui":
		ok = client.testUI()
	case "validation":
		ok = client.testValidation()
	case "generate":
		ok = client.testGenerate(defaultBrand)
	case "custom":
		if strings.TrimSpace(*brand) == "" {
			printError("Brand is required for custom test. Use -brand flag")
			os.Exit(1)
		}
		ok = client.testGenerate(*brand)
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, ui, validation, generate, custom")
		os.Exit(1)
	}

	if !ok {
		os.Exit(1)
	}
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"UI", tc.testUI},
		{"Validation", tc.testValidation},
		{"Generate", func() bool { return tc.testGenerate(defaultBrand) }},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	url := tc.baseURL + "/health"
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testUI() bool {
	printTestHeader("Testing UI Endpoint")

	url := tc.baseURL + "/"
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		printError(fmt.Sprintf("Expected an HTML page, got Content-Type '%s'", ct))
		return false
	}

	if !bytes.Contains(body, []byte("/generate")) {
		printError("UI does not post to /generate")
		return false
	}

	printSuccess("UI is served")
	return true
}

func (tc *TestClient) testValidation() bool {
	printTestHeader("Testing Input Validation")

	cases := []string{`{"brand":""}`, `{"brand":"   "}`, `{}`, `{"brand":42}`}
	for _, payload := range cases {
		fmt.Printf("POST %s/generate %s\n", tc.baseURL, payload)

		status, body, err := tc.post("/generate", []byte(payload))
		if err != nil {
			printError(fmt.Sprintf("Request failed: %v", err))
			return false
		}

		if status != http.StatusBadRequest {
			printError(fmt.Sprintf("Expected status 400, got %d", status))
			return false
		}

		var errResp map[string]string
		if err := json.Unmarshal(body, &errResp); err != nil {
			printError(fmt.Sprintf("Invalid JSON response: %v", err))
			return false
		}
		if errResp["error"] != "Brand name is required" {
			printError(fmt.Sprintf("Unexpected error message: '%s'", errResp["error"]))
			return false
		}
	}

	printSuccess("Empty and non-string brands are rejected")
	return true
}

func (tc *TestClient) testGenerate(brand string) bool {
	printTestHeader("Testing Brand Intelligence Generation")

	fmt.Printf("POST %s/generate\n", tc.baseURL)
	fmt.Printf("%sBrand:%s %s\n\n", colorCyan, colorReset, brand)

	payload, _ := json.Marshal(map[string]string{"brand": brand})

	start := time.Now()
	status, body, err := tc.post("/generate", payload)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	fmt.Printf("Completed in %s\n", time.Since(start).Round(time.Millisecond))

	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var result map[string]map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	required := map[string][]string{
		"brandSnapshot": {
			"whatTheyDo", "category", "primaryOfferings", "targetSegments",
			"brandVoice", "visibilityOpportunities",
		},
		"salesStarterKit": {
			"buyerRoles", "painPoints", "valueAngles", "coldEmailOpener",
			"linkedInDMMessage", "discoveryQuestions", "thoughtLeadershipPoint",
		},
	}
	for section, fields := range required {
		obj, ok := result[section]
		if !ok {
			printError(fmt.Sprintf("Missing section: %s", section))
			return false
		}
		for _, field := range fields {
			if _, ok := obj[field]; !ok {
				printError(fmt.Sprintf("Missing field: %s.%s", section, field))
				return false
			}
		}
	}

	printSuccess("Brand intelligence generated")
	fmt.Printf("\n%sResult:%s\n", colorPurple, colorReset)
	fmt.Println(strings.Repeat("=", 80))
	printJSON(body)
	fmt.Println(strings.Repeat("=", 80))
	return true
}

func (tc *TestClient) post(path string, payload []byte) (int, []byte, error) {
	resp, err := tc.client.Post(tc.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("%s%s%s\n", colorYellow, prettyJSON.String(), colorReset)
	}
}
