package services

import (
	"dcim-asset-service/models"
)

// 端口接口类型族
var (
	// 笼位类端口（可插光模块或直连铜缆）
	cageConnectors = map[models.ConnectorType]bool{
		models.ConnectorSFP:     true,
		models.ConnectorSFPPlus: true,
		models.ConnectorQSFP:    true,
		models.ConnectorQSFP28:  true,
	}

	// 双绞线类端口
	twistedPairConnectors = map[models.ConnectorType]bool{
		models.ConnectorRJ45: true,
	}

	// 直连铜缆类线缆
	dacCableTypes = map[models.CableType]bool{
		models.CableTypeDACSFP:  true,
		models.CableTypeDACQSFP: true,
	}

	// 光纤类线缆
	fiberCableTypes = map[models.CableType]bool{
		models.CableTypeFiberSM: true,
		models.CableTypeFiberMM: true,
	}

	// 铜缆类线缆
	copperCableTypes = map[models.CableType]bool{
		models.CableTypeCat5e: true,
		models.CableTypeCat6:  true,
		models.CableTypeCat6a: true,
	}
)

// ValidateCableCompatibility 校验线缆类型能否接入指定端口。规则按优先级：
//  1. 直连铜缆要求端口为笼位类接口；
//  2. 光纤要求端口已插入且非故障、非报废的光模块；
//  3. 铜缆要求端口为双绞线类接口；
//  4. 未识别的组合默认放行——这是有意的宽松兜底，
//     避免阻塞未预料到的硬件组合，而不是遗漏。
func ValidateCableCompatibility(cableType models.CableType, port *models.Port) error {
	switch {
	case dacCableTypes[cableType]:
		if !cageConnectors[port.Connector] {
			return &CompatibilityError{
				Reason:    ReasonWrongConnector,
				CableType: cableType,
				PortID:    port.ID,
				Connector: port.Connector,
			}
		}
		return nil

	case fiberCableTypes[cableType]:
		if port.Module == nil {
			return &CompatibilityError{
				Reason:    ReasonMissingModule,
				CableType: cableType,
				PortID:    port.ID,
				Connector: port.Connector,
			}
		}
		if port.Module.Status == models.ModuleStatusFaulty {
			return &CompatibilityError{
				Reason:    ReasonFaultyModule,
				CableType: cableType,
				PortID:    port.ID,
				Connector: port.Connector,
			}
		}
		if port.Module.Status == models.ModuleStatusScrapped {
			return &CompatibilityError{
				Reason:    ReasonScrappedModule,
				CableType: cableType,
				PortID:    port.ID,
				Connector: port.Connector,
			}
		}
		return nil

	case copperCableTypes[cableType]:
		if !twistedPairConnectors[port.Connector] {
			return &CompatibilityError{
				Reason:    ReasonWrongConnector,
				CableType: cableType,
				PortID:    port.ID,
				Connector: port.Connector,
			}
		}
		return nil
	}

	// 默认放行分支（规则4）
	return nil
}

// InferDefaultCableType 在调用方未指定线缆类型时根据端口接口推断默认类型
func InferDefaultCableType(connector models.ConnectorType) models.CableType {
	switch {
	case twistedPairConnectors[connector]:
		return models.CableTypeCat6
	case cageConnectors[connector]:
		return models.CableTypeFiberMM
	default:
		return models.CableTypeOther
	}
}
