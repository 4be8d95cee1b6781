package receipt

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

var _ = ginkgo.Describe("Server", func() {
	var (
		scanner     *mockScanner
		advisor     *mockAdvisor
		service     *Service
		server      *Server
		auth        BasicAuth
		ghttpServer *ghttp.Server
	)

	setupServer := func() {
		if ghttpServer != nil {
			ghttpServer.Close()
		}
		ghttpServer = ghttp.NewServer()
		ghttpServer.AppendHandlers(server.ServeHTTP)
	}

	ginkgo.BeforeEach(func() {
		scanner = newMockScanner()
		advisor = newMockAdvisor()
		service = NewService(scanner, advisor)
		auth = BasicAuth{}
		server = NewServerWithMux(service, auth, http.NewServeMux())
		setupServer()
	})

	ginkgo.AfterEach(func() {
		if ghttpServer != nil {
			ghttpServer.Close()
		}
	})

	ginkgo.Describe("handleAnalyzeImage", func() {
		newUpload := func(filename string) (*bytes.Buffer, string) {
			var b bytes.Buffer
			writer := multipart.NewWriter(&b)
			part, _ := writer.CreateFormFile("file", filename)
			part.Write([]byte("fake image data"))
			writer.Close()
			return &b, writer.FormDataContentType()
		}

		ginkgo.When("analysis succeeds", func() {
			ginkgo.It("should return status OK", func() {
				body, contentType := newUpload("receipt.jpg")
				resp, err := http.Post(ghttpServer.URL()+"/api/receipts/analyze", contentType, body)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				resp.Body.Close()
			})

			ginkgo.It("should return the full analysis report", func() {
				body, contentType := newUpload("receipt.jpg")
				resp, err := http.Post(ghttpServer.URL()+"/api/receipts/analyze", contentType, body)
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()
				var report Report
				respBody, err := io.ReadAll(resp.Body)
				Expect(err).NotTo(HaveOccurred())
				Expect(json.Unmarshal(respBody, &report)).NotTo(HaveOccurred())
				Expect(report.Items).To(HaveLen(3))
				Expect(report.GrandTotal).To(BeNumerically("~", 10.98, 1e-9))
				Expect(report.Summary.TotalItems).To(Equal(3))
			})

			ginkgo.It("should set Content-Type to application/json", func() {
				body, contentType := newUpload("receipt.jpg")
				resp, err := http.Post(ghttpServer.URL()+"/api/receipts/analyze", contentType, body)
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()
				Expect(resp.Header.Get("Content-Type")).To(Equal("application/json"))
			})
		})

		ginkgo.When("upload is a PNG file", func() {
			ginkgo.It("should return status OK", func() {
				body, contentType := newUpload("receipt.png")
				resp, err := http.Post(ghttpServer.URL()+"/api/receipts/analyze", contentType, body)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				resp.Body.Close()
			})
		})

		ginkgo.When("no file is provided", func() {
			ginkgo.It("should return status Bad Request", func() {
				var b bytes.Buffer
				writer := multipart.NewWriter(&b)
				writer.Close()

				resp, err := http.Post(ghttpServer.URL()+"/api/receipts/analyze", writer.FormDataContentType(), &b)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
				resp.Body.Close()
			})

			ginkgo.It("should return error message", func() {
				var b bytes.Buffer
				writer := multipart.NewWriter(&b)
				writer.Close()

				resp, err := http.Post(ghttpServer.URL()+"/api/receipts/analyze", writer.FormDataContentType(), &b)
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()
				body, err := io.ReadAll(resp.Body)
				Expect(err).NotTo(HaveOccurred())
				Expect(string(body)).To(ContainSubstring("file"))
			})
		})

		ginkgo.When("invalid multipart form", func() {
			ginkgo.It("should return status Bad Request", func() {
				resp, err := http.Post(ghttpServer.URL()+"/api/receipts/analyze", "multipart/form-data", bytes.NewBufferString("invalid"))
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
				resp.Body.Close()
			})
		})

		ginkgo.When("the scanner fails", func() {
			ginkgo.BeforeEach(func() {
				scanner.scanErr = errors.New("scan error")
			})

			ginkgo.It("should return status Bad Request", func() {
				body, contentType := newUpload("receipt.jpg")
				resp, err := http.Post(ghttpServer.URL()+"/api/receipts/analyze", contentType, body)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
				resp.Body.Close()
			})

			ginkgo.It("should return error in JSON", func() {
				body, contentType := newUpload("receipt.jpg")
				resp, err := http.Post(ghttpServer.URL()+"/api/receipts/analyze", contentType, body)
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()
				var response map[string]string
				respBody, err := io.ReadAll(resp.Body)
				Expect(err).NotTo(HaveOccurred())
				Expect(json.Unmarshal(respBody, &response)).NotTo(HaveOccurred())
				Expect(response["error"]).To(ContainSubstring("scan error"))
			})
		})

		ginkgo.When("request method is GET", func() {
			ginkgo.It("should return status Method Not Allowed", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/receipts/analyze")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusMethodNotAllowed))
				resp.Body.Close()
			})
		})
	})

	ginkgo.Describe("handleAnalyzeText", func() {
		postText := func(text string) *http.Response {
			bodyBytes, _ := json.Marshal(map[string]string{"text": text})
			resp, err := http.Post(ghttpServer.URL()+"/api/receipts/text", "application/json", bytes.NewBuffer(bodyBytes))
			Expect(err).NotTo(HaveOccurred())
			return resp
		}

		ginkgo.When("the body carries receipt text", func() {
			ginkgo.It("should return status OK", func() {
				resp := postText(sampleReceiptText)
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				resp.Body.Close()
			})

			ginkgo.It("should return the analysis report", func() {
				resp := postText(sampleReceiptText)
				defer resp.Body.Close()
				var report Report
				body, err := io.ReadAll(resp.Body)
				Expect(err).NotTo(HaveOccurred())
				Expect(json.Unmarshal(body, &report)).NotTo(HaveOccurred())
				Expect(report.Text).To(Equal(sampleReceiptText))
				Expect(report.Items).To(HaveLen(3))
			})
		})

		ginkgo.When("the text has no parseable items", func() {
			ginkgo.It("should still return status OK with a zeroed report", func() {
				resp := postText("TOTAL $9.99")
				defer resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				var report Report
				body, err := io.ReadAll(resp.Body)
				Expect(err).NotTo(HaveOccurred())
				Expect(json.Unmarshal(body, &report)).NotTo(HaveOccurred())
				Expect(report.Items).To(BeEmpty())
				Expect(report.GrandTotal).To(BeZero())
			})
		})

		ginkgo.When("invalid JSON body", func() {
			ginkgo.It("should return status Bad Request", func() {
				resp, err := http.Post(ghttpServer.URL()+"/api/receipts/text", "application/json", bytes.NewBufferString("invalid json"))
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
				resp.Body.Close()
			})

			ginkgo.It("should return error message", func() {
				resp, err := http.Post(ghttpServer.URL()+"/api/receipts/text", "application/json", bytes.NewBufferString("invalid json"))
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()
				body, err := io.ReadAll(resp.Body)
				Expect(err).NotTo(HaveOccurred())
				Expect(string(body)).To(ContainSubstring("Invalid request body"))
			})
		})
	})

	ginkgo.Describe("handleTaxonomy", func() {
		ginkgo.It("should return status OK", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/taxonomy")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			resp.Body.Close()
		})

		ginkgo.It("should return the category taxonomy", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/taxonomy")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			var categories []Category
			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(json.Unmarshal(body, &categories)).NotTo(HaveOccurred())
			Expect(categories).To(HaveLen(5))
			Expect(categories[0].Name).To(Equal("Groceries"))
		})

		ginkgo.It("should set Content-Type to application/json", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/taxonomy")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.Header.Get("Content-Type")).To(Equal("application/json"))
		})
	})

	ginkgo.Describe("authenticate", func() {
		ginkgo.When("no auth is configured", func() {
			ginkgo.It("should return true", func() {
				req, err := http.NewRequest("GET", ghttpServer.URL()+"/api/taxonomy", nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(server.authenticate(req)).To(BeTrue())
			})
		})

		ginkgo.When("valid credentials are provided", func() {
			ginkgo.BeforeEach(func() {
				auth = BasicAuth{Username: "user", Password: "pass"}
				server = NewServerWithMux(service, auth, http.NewServeMux())
				setupServer()
			})

			ginkgo.It("should return true", func() {
				req, err := http.NewRequest("GET", ghttpServer.URL()+"/api/taxonomy", nil)
				Expect(err).NotTo(HaveOccurred())
				credentials := base64.StdEncoding.EncodeToString([]byte("user:pass"))
				req.Header.Set("Authorization", "Basic "+credentials)
				Expect(server.authenticate(req)).To(BeTrue())
			})
		})

		ginkgo.When("invalid credentials are provided", func() {
			ginkgo.BeforeEach(func() {
				auth = BasicAuth{Username: "user", Password: "pass"}
				server = NewServerWithMux(service, auth, http.NewServeMux())
				setupServer()
			})

			ginkgo.It("should return false", func() {
				req, err := http.NewRequest("GET", ghttpServer.URL()+"/api/taxonomy", nil)
				Expect(err).NotTo(HaveOccurred())
				credentials := base64.StdEncoding.EncodeToString([]byte("user:wrong"))
				req.Header.Set("Authorization", "Basic "+credentials)
				Expect(server.authenticate(req)).To(BeFalse())
			})
		})

		ginkgo.When("no authorization header is provided", func() {
			ginkgo.BeforeEach(func() {
				auth = BasicAuth{Username: "user", Password: "pass"}
				server = NewServerWithMux(service, auth, http.NewServeMux())
				setupServer()
			})

			ginkgo.It("should return false", func() {
				req, err := http.NewRequest("GET", ghttpServer.URL()+"/api/taxonomy", nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(server.authenticate(req)).To(BeFalse())
			})
		})
	})

	ginkgo.Describe("requireAuth", func() {
		ginkgo.When("request is unauthorized", func() {
			ginkgo.BeforeEach(func() {
				auth = BasicAuth{Username: "user", Password: "pass"}
				server = NewServerWithMux(service, auth, http.NewServeMux())
				setupServer()
			})

			ginkgo.It("should return status Unauthorized", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/taxonomy")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
				resp.Body.Close()
			})

			ginkgo.It("should set WWW-Authenticate header", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/taxonomy")
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()
				Expect(resp.Header.Get("WWW-Authenticate")).NotTo(BeEmpty())
			})
		})

		ginkgo.When("request carries valid credentials", func() {
			ginkgo.BeforeEach(func() {
				auth = BasicAuth{Username: "user", Password: "pass"}
				server = NewServerWithMux(service, auth, http.NewServeMux())
				setupServer()
			})

			ginkgo.It("should return status OK", func() {
				req, err := http.NewRequest("GET", ghttpServer.URL()+"/api/taxonomy", nil)
				Expect(err).NotTo(HaveOccurred())
				req.SetBasicAuth("user", "pass")
				resp, err := http.DefaultClient.Do(req)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				resp.Body.Close()
			})
		})
	})
})
