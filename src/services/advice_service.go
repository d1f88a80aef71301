package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"finflow/src/clients/gemini"
	"finflow/src/schemas"
	"finflow/src/utils"
)

var digitsPattern = regexp.MustCompile(`[^0-9]`)

type AdviceServiceI interface {
	GenerateAdvice(ctx context.Context, balance float64, date string) (string, error)
	EstimateValue(ctx context.Context, request schemas.AppraisalRequest) (int, error)
}

// AdviceService wraps the text generation backend behind the two contracts
// the rest of the system needs: free-text investment advice and a single
// integer price estimate for AI-valued asset kinds.
type AdviceService struct {
	client gemini.GeminiServiceClientI
}

func NewAdviceService(client gemini.GeminiServiceClientI) *AdviceService {
	return &AdviceService{client: client}
}

func (s *AdviceService) GenerateAdvice(ctx context.Context, balance float64, date string) (string, error) {
	prompt := fmt.Sprintf(`Sen bir finansal yatırım danışmanısın. Kullanıcının %.2f TL bakiyesi var. Tarih: %s.
Kısa, nötr ve profesyonel bir dille, bu bakiye ile şu anki piyasa koşullarına göre mantıklı bir altın/döviz sepeti önerisi yap.
Örnek format: "Şu anki piyasada X TL ile Y alabilirsin çünkü Z."
Yatırım tavsiyesi değildir uyarısı ekleme, sadece dostane bir öneri sun. Çok kısa tut (max 2-3 cümle).`, balance, date)

	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("advice generation returned no text")
	}
	return text, nil
}

// EstimateValue asks the model for a single numeric market value of a car,
// home or land holding and parses the integer out of its reply.
func (s *AdviceService) EstimateValue(ctx context.Context, request schemas.AppraisalRequest) (int, error) {
	prompt, err := appraisalPrompt(request)
	if err != nil {
		return 0, err
	}

	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return 0, err
	}

	digits := digitsPattern.ReplaceAllString(text, "")
	if digits == "" {
		return 0, fmt.Errorf("could not parse a price out of the model response")
	}
	price, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("could not parse a price out of the model response")
	}
	return price, nil
}

func appraisalPrompt(request schemas.AppraisalRequest) (string, error) {
	switch request.Kind {
	case schemas.AppraisalKindCar:
		if request.Car == nil {
			return "", utils.BadRequest("car details are required")
		}
		return fmt.Sprintf(`Sen bir araç değerleme uzmanısın. Şu özelliklerdeki aracın Türkiye ikinci el piyasasındaki ortalama tahmini değerini (TL) söyle:
Marka: %s
Model: %s
Yıl: %d
KM: %d

Sadece tek bir sayısal değer (TL) ver. Açıklama yapma. Örn: 1250000`,
			request.Car.Brand, request.Car.Model, request.Car.Year, request.Car.KM), nil
	case schemas.AppraisalKindHome:
		if request.Home == nil {
			return "", utils.BadRequest("home details are required")
		}
		return propertyPrompt("evin", request.Home), nil
	case schemas.AppraisalKindLand:
		if request.Land == nil {
			return "", utils.BadRequest("land details are required")
		}
		return propertyPrompt("arsanın", request.Land), nil
	default:
		return "", utils.BadRequest("unknown appraisal type")
	}
}

func propertyPrompt(noun string, details *schemas.PropertyDetails) string {
	return fmt.Sprintf(`Sen bir gayrimenkul değerleme uzmanısın. Şu özelliklerdeki %s Türkiye piyasasındaki ortalama tahmini değerini (TL) söyle:
Konum: %s
Büyüklük: %d m2

Sadece tek bir sayısal değer (TL) ver. Açıklama yapma. Örn: 5000000`, noun, details.Location, details.M2)
}
