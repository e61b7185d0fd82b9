package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:8000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // generation can be slow, no timeout
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Tenglaafi Query API smoke test\n")

	// 1. Health
	color.Yellow("\n1. Health check")
	resp, body, err := sendRequest("GET", "/query/v1/health", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	// 2. Stats
	color.Yellow("\n2. Index stats")
	resp, body, err = sendRequest("GET", "/query/v1/stats", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var statsResp map[string]interface{}
	json.Unmarshal(body, &statsResp)
	prettyPrint(statsResp)

	// 3. Single question
	color.Yellow("\n3. Single question")
	queryReq := map[string]interface{}{
		"question": "Comment soigner le paludisme avec des plantes ?",
		"top_k":    3,
	}
	resp, body, err = sendRequest("POST", "/query/v1", queryReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var queryResp map[string]interface{}
	json.Unmarshal(body, &queryResp)
	prettyPrint(queryResp)

	// 4. Same question again, should hit the cache
	color.Yellow("\n4. Same question again (expect cache_hit=true)")
	resp, body, err = sendRequest("POST", "/query/v1", queryReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	json.Unmarshal(body, &queryResp)
	if hit, ok := queryResp["cache_hit"].(bool); ok && hit {
		color.Green("Cache hit confirmed")
	} else {
		color.Red("Expected a cache hit")
	}

	// 5. Batch
	color.Yellow("\n5. Batch questions")
	batchReq := map[string]interface{}{
		"questions": []string{
			"Quels sont les symptômes de la dengue ?",
			"ab",
			"Quelles plantes contre la fièvre typhoïde ?",
		},
		"top_k": 3,
	}
	resp, body, err = sendRequest("POST", "/query/v1/batch", batchReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var batchResp map[string]interface{}
	json.Unmarshal(body, &batchResp)
	prettyPrint(batchResp)

	// 6. Suggestions
	color.Yellow("\n6. Suggestions")
	resp, body, err = sendRequest("GET", "/query/v1/suggestions?question=paludisme&limit=3", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var suggestResp map[string]interface{}
	json.Unmarshal(body, &suggestResp)
	prettyPrint(suggestResp)

	// 7. Clear cache
	color.Yellow("\n7. Clear cache")
	resp, body, err = sendRequest("DELETE", "/query/v1/cache", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var clearResp map[string]interface{}
	json.Unmarshal(body, &clearResp)
	prettyPrint(clearResp)

	color.Cyan("\n✅ Smoke test finished")
}
