package modal

import "ruo.dev/internal/models"

// Localized strings shown inside the architecture overlay
var (
	MsgLoading = models.LocalizedText{
		Ko: "다이어그램 로딩 중...",
		En: "Loading diagram...",
	}
	MsgFetchFailed = models.LocalizedText{
		Ko: "다이어그램을 불러오지 못했습니다",
		En: "Failed to load diagram",
	}
	MsgRenderFailed = models.LocalizedText{
		Ko: "다이어그램 렌더링 실패",
		En: "Diagram rendering failed",
	}
	MsgPrivacyNotice = models.LocalizedText{
		Ko: "전체 소스코드는 회사 소유의 자산으로 공개가 불가능합니다. 아키텍처 구조와 문제 해결 사례만 공유합니다.",
		En: "Full source code is proprietary and cannot be publicly shared. Only architecture and problem-solving insights are showcased.",
	}
)
