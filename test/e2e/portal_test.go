// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/radportal-labs/radportal/pkg/registry"
	"github.com/radportal-labs/radportal/pkg/schemas"
)

func doRequest(method, path, token string, payload any) (*http.Response, []byte) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		Expect(err).NotTo(HaveOccurred())
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, server.URL+path, body)
	Expect(err).NotTo(HaveOccurred())
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	Expect(err).NotTo(HaveOccurred())
	raw, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	Expect(resp.Body.Close()).To(Succeed())
	return resp, raw
}

func decode[T any](raw []byte) T {
	var envelope schemas.APIResponse[T]
	Expect(json.Unmarshal(raw, &envelope)).To(Succeed())
	return envelope.Response
}

var _ = Describe("portal", Ordered, func() {
	var adminToken string

	It("rejects bad credentials", func() {
		resp, _ := doRequest(http.MethodPost, "/login", "",
			schemas.LoginRequest{Email: registry.SeedAdminEmail, Password: "wrong"})
		Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
	})

	It("logs the seeded admin in", func() {
		resp, raw := doRequest(http.MethodPost, "/login", "",
			schemas.LoginRequest{Email: registry.SeedAdminEmail, Password: registry.SeedAdminPassword})
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		login := decode[schemas.LoginResponse](raw)
		Expect(login.Token).NotTo(BeEmpty())
		Expect(login.User.PasswordHash).To(BeEmpty())
		adminToken = login.Token
	})

	It("serves the seeded exam catalog", func() {
		resp, raw := doRequest(http.MethodGet, "/api/v1/examtypes", adminToken, nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(decode[[]schemas.ExamType](raw)).NotTo(BeEmpty())
	})

	It("records an exam and sees it in the listing and the stats", func() {
		exam := schemas.Exam{
			AccessionNumber: "E2E-001",
			PatientAge:      55,
			Modality:        schemas.ModalityCT,
			StudyName:       "Crânio",
			Physician:       "Dra. Lima",
			PerformedAt:     schemas.NewTimestamp(time.Now()),
			ContrastUsed:    true, ContrastVolumeML: 90,
		}
		resp, raw := doRequest(http.MethodPost, "/api/v1/exams", adminToken, exam)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		created := decode[schemas.Exam](raw)
		Expect(created.RecordedBy).To(Equal(registry.SeedAdminEmail))

		resp, raw = doRequest(http.MethodGet, "/api/v1/exams", adminToken, nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		listed := decode[[]schemas.Exam](raw)
		Expect(listed[0].AccessionNumber).To(Equal("E2E-001"), "newest exam comes first")

		resp, raw = doRequest(http.MethodGet, "/api/v1/stats/summary", adminToken, nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		summary := decode[schemas.StatsSummary](raw)
		Expect(summary.Total).To(Equal(len(listed)))
		Expect(summary.Contrast.With).To(BeNumerically(">=", 1))
	})

	It("manages a restricted account end to end", func() {
		resp, raw := doRequest(http.MethodPost, "/api/v1/users", adminToken, map[string]any{
			"nome": "Técnico US", "email": "us@local", "senha": "segredo1",
			"modalidades_permitidas": "US", "perfil": "user",
		})
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(decode[schemas.User](raw).PasswordHash).To(BeEmpty())

		resp, raw = doRequest(http.MethodPost, "/login", "",
			schemas.LoginRequest{Email: "us@local", Password: "segredo1"})
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		userToken := decode[schemas.LoginResponse](raw).Token

		// the US technician cannot record a CT exam
		exam := schemas.Exam{
			AccessionNumber: "E2E-002", PatientAge: 40, Modality: schemas.ModalityCT,
			StudyName: "Abdômen", Physician: "Dr. Souza",
			PerformedAt: schemas.NewTimestamp(time.Now()),
		}
		resp, _ = doRequest(http.MethodPost, "/api/v1/exams", userToken, exam)
		Expect(resp.StatusCode).To(Equal(http.StatusForbidden))

		// nor touch the account list
		resp, _ = doRequest(http.MethodGet, "/api/v1/users", userToken, nil)
		Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
	})

	It("updates the branding", func() {
		resp, raw := doRequest(http.MethodPut, "/api/v1/settings", adminToken, map[string]any{
			"portal_name": "Clinica E2E", "theme": "Lux",
		})
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		var settings struct {
			schemas.Settings
			ThemeURL string `json:"theme_url"`
		}
		Expect(json.Unmarshal(decodeRaw(raw), &settings)).To(Succeed())
		Expect(settings.PortalName).To(Equal("Clinica E2E"))
		Expect(settings.ThemeURL).To(ContainSubstring("lux"))
	})

	It("exports the exams as CSV", func() {
		resp, raw := doRequest(http.MethodGet, "/export.csv", adminToken, nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(resp.Header.Get("Content-Disposition")).To(ContainSubstring("attachment"))
		Expect(bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF})).To(BeTrue())
		Expect(string(raw)).To(ContainSubstring("E2E-001"))
	})

	It("shows the audit trail to the admin", func() {
		resp, raw := doRequest(http.MethodGet, "/api/v1/audit", adminToken, nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(string(raw)).To(ContainSubstring(fmt.Sprintf("%q", registry.SeedAdminEmail)))
	})

	It("ends the session on logout", func() {
		resp, _ := doRequest(http.MethodPost, "/logout", adminToken, nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		resp, _ = doRequest(http.MethodGet, "/api/v1/exams", adminToken, nil)
		Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
	})
})

// decodeRaw returns the raw response field of an API envelope.
func decodeRaw(raw []byte) []byte {
	var envelope struct {
		Response json.RawMessage `json:"response"`
	}
	Expect(json.Unmarshal(raw, &envelope)).To(Succeed())
	return envelope.Response
}
