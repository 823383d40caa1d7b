// Package mockdata produces realistic demo inspection records for local
// deployments, matching the shape of the production ingestion pipeline.
package mockdata

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/databricks-chaima/appsOPM2025/internal/domain/factories"
	"github.com/databricks-chaima/appsOPM2025/internal/domain/inspections"
)

// Factory corpus: 40 sites across 8 regions, 2 cameras each.
var factoryIDs = []string{
	"WUH-G426", "WUH-A79", "WUH-L42P", "WUH-BX11", "WUH-KX11",
	"YAN-YT01", "YAN-YT02", "YAN-YT03", "YAN-YT04", "YAN-YT05",
	"NGB-NB10", "NGB-NB11", "NGB-NB12", "NGB-NB13", "NGB-NB14",
	"GUA-GZ01", "GUA-GZ02", "GUA-GZ03", "GUA-GZ04", "GUA-GZ05",
	"SHE-SY01", "SHE-SY02", "SHE-SY03", "SHE-SY04", "SHE-SY05",
	"KYO-KY01", "KYO-KY02", "KYO-KY03", "KYO-KY04", "KYO-KY05",
	"RAY-RY01", "RAY-RY02", "RAY-RY03", "RAY-RY04", "RAY-RY05",
	"SHA-SH01", "SHA-SH02", "SHA-SH03", "SHA-SH04", "SHA-SH05",
}

var cameras = []string{"CAM-01", "CAM-02"}

// DefectTypes a KO weld can carry.
var DefectTypes = []string{
	"weld_crack",
	"porosity",
	"undercut",
	"spatter",
	"incomplete_fusion",
	"burn_through",
	"misalignment",
}

var modelVersions = []string{"v2.3.1", "v2.3.0", "v2.2.5"}

// numPhotos available under the image volume, photo1.jpg .. photo10.jpg.
const numPhotos = 10

// Factories returns the demo factory catalog. Region is the factory id
// prefix.
func Factories() []*factories.Factory {
	out := make([]*factories.Factory, 0, len(factoryIDs))
	for _, id := range factoryIDs {
		region, _, _ := strings.Cut(id, "-")
		out = append(out, &factories.Factory{
			FactoryID: id,
			Region:    region,
			Cameras:   append([]string(nil), cameras...),
		})
	}
	return out
}

// Generate produces n inspection records over the 7 days trailing now,
// 95% OK. Image paths cycle through the available demo photos under
// imagePrefix.
func Generate(rng *rand.Rand, n int, now time.Time, imagePrefix string) []*inspections.Inspection {
	imagePrefix = strings.TrimSuffix(imagePrefix, "/")
	start := now.Add(-7 * 24 * time.Hour)
	span := int(now.Sub(start).Seconds())

	out := make([]*inspections.Inspection, 0, n)
	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(rng.Intn(span)) * time.Second).Truncate(time.Second)

		ins := &inspections.Inspection{
			InspectionID:    fmt.Sprintf("INSP-%d-%06d", now.Year(), i+1),
			FactoryID:       factoryIDs[rng.Intn(len(factoryIDs))],
			CameraID:        cameras[rng.Intn(len(cameras))],
			Timestamp:       inspections.Timestamp{Time: ts},
			ImagePath:       fmt.Sprintf("%s/photo%d.jpg", imagePrefix, i%numPhotos+1),
			InferenceTimeMS: int64(45 + rng.Intn(136)),
			ModelVersion:    modelVersions[rng.Intn(len(modelVersions))],
			Date:            ts.Format(time.DateOnly),
		}

		if rng.Float64() < 0.95 {
			ins.Prediction = inspections.PredictionOK
			ins.ConfidenceScore = round4(0.92 + rng.Float64()*0.07)
		} else {
			ins.Prediction = inspections.PredictionKO
			ins.ConfidenceScore = round4(0.75 + rng.Float64()*0.20)
			dt := DefectTypes[rng.Intn(len(DefectTypes))]
			ins.DefectType = &dt
		}

		out = append(out, ins)
	}
	return out
}

func round4(f float64) float64 {
	return float64(int(f*10000+0.5)) / 10000
}
