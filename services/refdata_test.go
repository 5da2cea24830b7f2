package services

import (
	"context"
	"errors"
	"testing"

	"tenderdesk/apiclient"
)

type fakeReferenceSource struct {
	companies    []apiclient.Company
	companiesErr error
	master       []apiclient.SystemMasterEntry
	masterErr    error
}

func (f *fakeReferenceSource) Companies(ctx context.Context) ([]apiclient.Company, error) {
	return f.companies, f.companiesErr
}

func (f *fakeReferenceSource) SystemMaster(ctx context.Context) ([]apiclient.SystemMasterEntry, error) {
	return f.master, f.masterErr
}

var sampleMaster = []apiclient.SystemMasterEntry{
	{ID: 1, SystemType: "S", SystemNameE: "M-30"},
	{ID: 2, SystemType: "Z", SystemNameE: "2025-26"},
	{ID: 3, SystemType: "U", SystemNameE: "Quintal"},
	{ID: 4, SystemType: "S", SystemNameE: "S-30"},
	{ID: 5, SystemType: "Z", SystemNameE: "2026-27"},
}

func TestLoadReferenceData(t *testing.T) {
	src := &fakeReferenceSource{
		companies: []apiclient.Company{
			{UserID: 7, CompanyName: "Shree Mill", AccoID: 901, AcCode: 12},
			{UserID: 8, CompanyName: "Ganga Mill", AccoID: 902, AcCode: 15},
		},
		master: sampleMaster,
	}

	data := LoadReferenceData(context.Background(), src)

	wantCompanies := []CompanyOption{
		{ID: 12, Name: "Shree Mill", AccoID: 901},
		{ID: 15, Name: "Ganga Mill", AccoID: 902},
	}
	if len(data.Companies) != len(wantCompanies) {
		t.Fatalf("expected %d companies, got %d", len(wantCompanies), len(data.Companies))
	}
	for i, c := range wantCompanies {
		if data.Companies[i] != c {
			t.Errorf("Companies[%d] = %+v, want %+v", i, data.Companies[i], c)
		}
	}

	if len(data.Grades) != 2 || data.Grades[0].Name != "M-30" || data.Grades[1].Name != "S-30" {
		t.Errorf("unexpected grades: %+v", data.Grades)
	}
	if len(data.Seasons) != 2 || data.Seasons[0].Name != "2025-26" || data.Seasons[1].Name != "2026-27" {
		t.Errorf("unexpected seasons: %+v", data.Seasons)
	}
	for _, opt := range append(data.Grades, data.Seasons...) {
		if opt.Name == "Quintal" {
			t.Errorf("unit entry leaked into options: %+v", opt)
		}
	}
}

func TestLoadReferenceData_FailuresDegradeToEmpty(t *testing.T) {
	tests := []struct {
		name          string
		src           *fakeReferenceSource
		wantCompanies int
		wantGrades    int
	}{
		{
			name:       "companies fail",
			src:        &fakeReferenceSource{companiesErr: errors.New("boom"), master: sampleMaster},
			wantGrades: 2,
		},
		{
			name: "master fails",
			src: &fakeReferenceSource{
				companies: []apiclient.Company{{AcCode: 12, CompanyName: "Shree Mill"}},
				masterErr: errors.New("boom"),
			},
			wantCompanies: 1,
		},
		{
			name: "master empty",
			src:  &fakeReferenceSource{},
		},
		{
			name: "both fail",
			src:  &fakeReferenceSource{companiesErr: errors.New("a"), masterErr: errors.New("b")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := LoadReferenceData(context.Background(), tt.src)
			if len(data.Companies) != tt.wantCompanies {
				t.Errorf("companies = %d, want %d", len(data.Companies), tt.wantCompanies)
			}
			if len(data.Grades) != tt.wantGrades {
				t.Errorf("grades = %d, want %d", len(data.Grades), tt.wantGrades)
			}
		})
	}
}

func TestPartitionSystemMaster(t *testing.T) {
	byType := PartitionSystemMaster(sampleMaster)
	if len(byType[SystemTypeGrade]) != 2 || len(byType[SystemTypeSeason]) != 2 || len(byType[SystemTypeUnit]) != 1 {
		t.Errorf("unexpected partition sizes: %+v", byType)
	}
}

func TestFindCompany(t *testing.T) {
	data := ReferenceData{Companies: []CompanyOption{{ID: 12, Name: "Shree Mill", AccoID: 901}}}

	if c, ok := data.FindCompany(12); !ok || c.AccoID != 901 {
		t.Errorf("FindCompany(12) = %+v, %v", c, ok)
	}
	if _, ok := data.FindCompany(99); ok {
		t.Error("FindCompany(99) should miss")
	}
}
