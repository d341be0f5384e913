package main

import (
	"fmt"
	"net/http"
	"time"
)

// validationPage is a self-contained page the runner can drive to prove
// Chrome automation works before any scenario blames the target application.
const validationPage = `<!DOCTYPE html>
<html>
<head>
    <title>Jobtrail Runner - Browser Check</title>
</head>
<body>
    <h1 id="check-heading">Browser check</h1>
    <p id="check-note">Automation reached the validation page.</p>
    <button id="check-button">Run check</button>
    <div id="check-result"></div>
    <script>
        document.getElementById('check-button').addEventListener('click', function() {
            document.getElementById('check-result').textContent = 'check passed';
        });
    </script>
</body>
</html>`

// StartTestServer serves the validation page plus a JSON status endpoint on
// port. Callers gate on /status before relying on it.
func StartTestServer(port int) *http.Server {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: validationMux(),
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Validation server error: %v\n", err)
		}
	}()

	return server
}

func validationMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", serveValidationPage)
	mux.HandleFunc("/status", serveValidationStatus)
	return mux
}

func serveValidationPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, validationPage)
}

func serveValidationStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","server":"validation","timestamp":%q}`,
		time.Now().Format(time.RFC3339))
}
